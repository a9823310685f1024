package auth

import (
	"errors"
	"net/http"

	"taskboard/common"
	"taskboard/config"
	"taskboard/services"
	"taskboard/store"

	"github.com/gin-gonic/gin"
)

func ConfirmationController(router *gin.Engine, db store.Store, cfg *config.Config) {
	router.GET("/auth/confirmation/:token", func(c *gin.Context) {
		Confirmation(c, db, cfg)
	})
}

func Confirmation(c *gin.Context, db store.Store, cfg *config.Config) {
	userID, ok := services.DecodeConfToken(cfg, c.Param("token"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": common.ErrConfTknInvalid})
		return
	}

	ctx := c.Request.Context()
	user, err := db.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": common.ErrUserNotFound})
			return
		}
		common.InternalError(c, err)
		return
	}

	user.IsVerified = true
	if err := db.PutUser(ctx, user); err != nil {
		common.InternalError(c, err)
		return
	}
	c.String(http.StatusOK, "Email confirmation completed")
}
