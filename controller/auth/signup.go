package auth

import (
	"errors"
	"net/http"
	"time"

	"taskboard/common"
	"taskboard/config"
	"taskboard/dto"
	"taskboard/model"
	"taskboard/services"
	"taskboard/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

func SignUpController(router *gin.Engine, db store.Store, cfg *config.Config) {
	router.POST("/auth/signup", func(c *gin.Context) {
		Signup(c, db, cfg)
	})
}

func Signup(c *gin.Context, db store.Store, cfg *config.Config) {
	var request dto.SignupRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": common.ErrBodyInvalid})
		return
	}
	if err := services.ValidateName(request.Name); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
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
	_, err := db.GetUserByEmail(ctx, request.Email)
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": common.ErrEmailExist})
		return
	}
	if !errors.Is(err, store.ErrNotFound) {
		common.InternalError(c, err)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		common.InternalError(c, err)
		return
	}

	newUser := model.User{
		UserID:    uuid.New().String(),
		Name:      request.Name,
		Email:     request.Email,
		Password:  string(hashedPassword),
		CreatedAt: time.Now(),
	}
	if err := db.PutUser(ctx, &newUser); err != nil {
		common.InternalError(c, err)
		return
	}

	confToken, err := services.CreateConfToken(cfg, newUser.UserID)
	if err != nil {
		common.InternalError(c, err)
		return
	}

	// In test runs the raw token comes back in the response so the flow
	// stays testable without a mail server.
	if cfg.Env == "test" {
		c.JSON(http.StatusCreated, gin.H{"confToken": confToken})
		return
	}

	confURL := "http://" + c.Request.Host + "/auth/confirmation/" + confToken
	isEmailSent := true
	if err := services.SendConfirmationEmail(cfg, newUser.Email, confURL); err != nil {
		log.Error().Err(err).Str("email", newUser.Email).Msg("confirmation email failed")
		isEmailSent = false
	}
	c.JSON(http.StatusCreated, gin.H{"isEmailSent": isEmailSent})
}
