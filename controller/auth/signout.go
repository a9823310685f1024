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

func SignOutController(router *gin.Engine, db store.Store, cfg *config.Config) {
	handler := func(c *gin.Context) {
		Signout(c, db, cfg)
	}
	router.POST("/auth/signout", handler)
	router.GET("/auth/signout", handler)
}

// Signout is idempotent: the cookie is cleared and 205 reported whether or
// not the presented refresh token still decodes.
func Signout(c *gin.Context, db store.Store, cfg *config.Config) {
	refreshToken, err := c.Cookie(cfg.CookieName)
	if err != nil || refreshToken == "" {
		c.Status(http.StatusNoContent)
		return
	}

	if userID, ok := services.DecodeRefreshToken(cfg, refreshToken); ok {
		ctx := c.Request.Context()
		user, err := db.GetUser(ctx, userID)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			common.InternalError(c, err)
			return
		}
		if user != nil {
			services.FilterUserTokens(cfg, user, refreshToken)
			if err := db.PutUser(ctx, user); err != nil {
				common.InternalError(c, err)
				return
			}
		}
	}

	clearRefreshCookie(c, cfg)
	c.Status(http.StatusResetContent)
}
