package project

import (
	"errors"
	"net/http"

	"taskboard/common"
	"taskboard/config"
	"taskboard/dto"
	"taskboard/middleware"
	"taskboard/services"
	"taskboard/store"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func MemberController(router *gin.Engine, db store.Store, cfg *config.Config) {
	authed := middleware.AccessTokenMiddleware(cfg)
	router.POST("/projects/:id/member", authed, func(c *gin.Context) {
		InviteMember(c, db, cfg)
	})
	router.GET("/projects/:id/member/:token", authed, func(c *gin.Context) {
		AcceptMemberInvite(c, db, cfg)
	})
	router.DELETE("/projects/:id/member/:userId", authed, func(c *gin.Context) {
		RemoveMember(c, db)
	})
}

// inviteUser runs the shared invitation flow: only the current owner may
// invite (masked as 404 otherwise), the target must be a verified user, and
// the generated token is stored on the project before it is mailed out.
func inviteUser(c *gin.Context, db store.Store, cfg *config.Config, segment string,
	createToken func(*config.Config, string) (string, error)) {
	projectID := c.Param("id")
	if !services.IsValidID(projectID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": common.ErrIDInvalid})
		return
	}
	var request dto.InviteRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": common.ErrBodyInvalid})
		return
	}
	if err := services.ValidateEmail(request.Email); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	ownerID := c.MustGet("userId").(string)
	project, err := db.GetProjectOwnedBy(ctx, projectID, ownerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": common.ErrProjectNotFoundOrNoAccess})
			return
		}
		common.InternalError(c, err)
		return
	}

	invited, err := db.GetUserByEmail(ctx, request.Email)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		common.InternalError(c, err)
		return
	}
	if invited == nil || !invited.IsVerified {
		c.JSON(http.StatusNotFound, gin.H{"error": common.ErrUserNotFound})
		return
	}

	invToken, err := createToken(cfg, invited.UserID)
	if err != nil {
		common.InternalError(c, err)
		return
	}
	project.Tokens = append(project.Tokens, invToken)
	if err := db.PutProject(ctx, project); err != nil {
		common.InternalError(c, err)
		return
	}

	if cfg.Env == "test" {
		c.JSON(http.StatusCreated, gin.H{"invToken": invToken})
		return
	}

	invURL := "http://" + c.Request.Host + "/projects/" + projectID + "/" + segment + "/" + invToken
	isEmailSent := true
	if err := services.SendInvitationEmail(cfg, invited.Email, invURL, project.Title); err != nil {
		log.Error().Err(err).Str("email", invited.Email).Msg("invitation email failed")
		isEmailSent = false
	}
	c.JSON(http.StatusCreated, gin.H{"isEmailSent": isEmailSent})
}

func InviteMember(c *gin.Context, db store.Store, cfg *config.Config) {
	inviteUser(c, db, cfg, "member", services.CreateMemberInviteToken)
}

// AcceptMemberInvite consumes a member-invite token. The token must decode
// under the member secret, still be listed on the project, and be bound to
// the accepting caller.
func AcceptMemberInvite(c *gin.Context, db store.Store, cfg *config.Config) {
	projectID := c.Param("id")
	if !services.IsValidID(projectID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": common.ErrIDInvalid})
		return
	}
	invToken := c.Param("token")
	invitedID, ok := services.DecodeMemberInviteToken(cfg, invToken)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": common.ErrInvTknInvalid})
		return
	}

	ctx := c.Request.Context()
	project, err := db.GetProject(ctx, projectID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": common.ErrProjectNotFound})
			return
		}
		common.InternalError(c, err)
		return
	}

	userID := c.MustGet("userId").(string)
	if !project.HasToken(invToken) || invitedID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": common.ErrInvIncorrect})
		return
	}

	services.FilterProjectTokens(cfg, project, invToken)
	project.AddMember(userID)
	if err := db.PutProject(ctx, project); err != nil {
		common.InternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

func RemoveMember(c *gin.Context, db store.Store) {
	projectID := c.Param("id")
	memberID := c.Param("userId")
	if !services.IsValidID(projectID) || !services.IsValidID(memberID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": common.ErrIDInvalid})
		return
	}

	ctx := c.Request.Context()
	ownerID := c.MustGet("userId").(string)
	project, err := db.GetProjectOwnedBy(ctx, projectID, ownerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": common.ErrProjectNotFoundOrNoAccess})
			return
		}
		common.InternalError(c, err)
		return
	}

	if !project.RemoveMember(memberID) {
		c.JSON(http.StatusNotFound, gin.H{"error": common.ErrMemberNotFound})
		return
	}
	if err := db.PutProject(ctx, project); err != nil {
		common.InternalError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
