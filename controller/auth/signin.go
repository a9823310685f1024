package auth

import (
	"errors"
	"net/http"

	"taskboard/common"
	"taskboard/config"
	"taskboard/dto"
	"taskboard/services"
	"taskboard/store"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

func SignInController(router *gin.Engine, db store.Store, cfg *config.Config) {
	router.POST("/auth/signin", func(c *gin.Context) {
		Signin(c, db, cfg)
	})
}

func setRefreshCookie(c *gin.Context, cfg *config.Config, token string) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(cfg.CookieName, token, int(cfg.RefreshTTL.Seconds()), "/", "", true, true)
}

func clearRefreshCookie(c *gin.Context, cfg *config.Config) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(cfg.CookieName, "", -1, "/", "", true, true)
}

func Signin(c *gin.Context, db store.Store, cfg *config.Config) {
	var request dto.SigninRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": common.ErrBodyInvalid})
		return
	}
	if err := services.ValidateEmail(request.Email); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := services.ValidatePassword(cfg, request.Password); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	user, err := db.GetUserByEmail(ctx, request.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": common.ErrEmailNotFound})
			return
		}
		common.InternalError(c, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(request.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": common.ErrPwdIncorrect})
		return
	}
	if !user.IsVerified {
		c.JSON(http.StatusUnauthorized, gin.H{"error": common.ErrNotConfirmed})
		return
	}

	// An existing cookie means this session lineage rotates instead of
	// growing the stored set.
	oldRefreshToken, _ := c.Cookie(cfg.CookieName)
	accessToken, refreshToken, err := services.GenerateUserTokens(cfg, user, oldRefreshToken)
	if err != nil {
		common.InternalError(c, err)
		return
	}
	if err := db.PutUser(ctx, user); err != nil {
		common.InternalError(c, err)
		return
	}

	setRefreshCookie(c, cfg, refreshToken)
	c.JSON(http.StatusOK, gin.H{"token": accessToken, "user": user})
}
