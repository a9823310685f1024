package task

import (
	"net/http"

	"taskboard/common"
	"taskboard/config"
	"taskboard/middleware"
	"taskboard/store"

	"github.com/gin-gonic/gin"
)

func SubscriptionController(router *gin.Engine, db store.Store, cfg *config.Config) {
	authed := middleware.AccessTokenMiddleware(cfg)
	router.POST("/tasks/:id/subscribe", authed, func(c *gin.Context) {
		Subscribe(c, db)
	})
	router.PUT("/tasks/:id/subscribe", authed, func(c *gin.Context) {
		Subscribe(c, db)
	})
	router.DELETE("/tasks/:id/subscribe", authed, func(c *gin.Context) {
		Unsubscribe(c, db)
	})
}

// Subscribe adds the caller to the task's subscriber list. Subscribing twice
// is a no-op that still answers 200.
func Subscribe(c *gin.Context, db store.Store) {
	task := resolveTask(c, db)
	if task == nil {
		return
	}
	userID := c.MustGet("userId").(string)
	task.AddSubscriber(userID)
	if err := db.PutTask(c.Request.Context(), task); err != nil {
		common.InternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func Unsubscribe(c *gin.Context, db store.Store) {
	task := resolveTask(c, db)
	if task == nil {
		return
	}
	userID := c.MustGet("userId").(string)
	task.RemoveSubscriber(userID)
	if err := db.PutTask(c.Request.Context(), task); err != nil {
		common.InternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}
