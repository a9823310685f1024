package auth

import (
	"errors"
	"net/http"
	"strings"

	"taskboard/common"
	"taskboard/config"
	"taskboard/services"
	"taskboard/store"

	"github.com/gin-gonic/gin"
)

func RefreshController(router *gin.Engine, db store.Store, cfg *config.Config) {
	router.GET("/auth/refresh", func(c *gin.Context) {
		Refresh(c, db, cfg)
	})
}

// Refresh rotates the access+refresh pair. The caller must present both the
// refresh cookie and a bearer access token; the access token may be expired
// but its subject must match the refresh token's.
func Refresh(c *gin.Context, db store.Store, cfg *config.Config) {
	refreshToken, err := c.Cookie(cfg.CookieName)
	if err != nil || refreshToken == "" {
		c.Status(http.StatusNoContent)
		return
	}

	header := c.Request.Header.Get("Authorization")
	accessToken := strings.TrimPrefix(header, "Bearer ")
	if accessToken == "" || accessToken == header {
		clearRefreshCookie(c, cfg)
		c.Status(http.StatusNoContent)
		return
	}

	userID, ok := services.DecodeRefreshToken(cfg, refreshToken)
	if !ok {
		clearRefreshCookie(c, cfg)
		c.JSON(http.StatusUnauthorized, gin.H{"error": common.ErrRfrTknInvalid})
		return
	}

	ctx := c.Request.Context()
	user, err := db.GetUser(ctx, userID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		common.InternalError(c, err)
		return
	}
	if user == nil || !user.HasToken(refreshToken) {
		clearRefreshCookie(c, cfg)
		c.JSON(http.StatusNotFound, gin.H{"error": common.ErrUserNotFound})
		return
	}

	accessUserID, ok := services.DecodeAccessToken(cfg, accessToken, true)
	if !ok || accessUserID != userID {
		clearRefreshCookie(c, cfg)
		c.JSON(http.StatusForbidden, gin.H{"error": common.ErrTknMismatch})
		return
	}

	newAccessToken, newRefreshToken, err := services.GenerateUserTokens(cfg, user, refreshToken)
	if err != nil {
		common.InternalError(c, err)
		return
	}
	if err := db.PutUser(ctx, user); err != nil {
		common.InternalError(c, err)
		return
	}

	setRefreshCookie(c, cfg, newRefreshToken)
	c.JSON(http.StatusCreated, gin.H{"token": newAccessToken, "user": user})
}
