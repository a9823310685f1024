package project

import (
	"errors"
	"net/http"

	"taskboard/common"
	"taskboard/config"
	"taskboard/middleware"
	"taskboard/services"
	"taskboard/store"

	"github.com/gin-gonic/gin"
)

func OwnerController(router *gin.Engine, db store.Store, cfg *config.Config) {
	authed := middleware.AccessTokenMiddleware(cfg)
	router.POST("/projects/:id/owner", authed, func(c *gin.Context) {
		InviteOwner(c, db, cfg)
	})
	router.GET("/projects/:id/owner/:token", authed, func(c *gin.Context) {
		AcceptOwnerInvite(c, db, cfg)
	})
}

func InviteOwner(c *gin.Context, db store.Store, cfg *config.Config) {
	inviteUser(c, db, cfg, "owner", services.CreateOwnerInviteToken)
}

// AcceptOwnerInvite transfers ownership: the old owner joins the members,
// the accepting caller becomes owner and leaves the member set. The token
// must decode under the owner secret specifically; a member-invite token is
// rejected here as invalid.
func AcceptOwnerInvite(c *gin.Context, db store.Store, cfg *config.Config) {
	projectID := c.Param("id")
	if !services.IsValidID(projectID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": common.ErrIDInvalid})
		return
	}
	invToken := c.Param("token")
	invitedID, ok := services.DecodeOwnerInviteToken(cfg, invToken)
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
	oldOwnerID := project.OwnerID
	project.RemoveMember(userID)
	project.OwnerID = userID
	if oldOwnerID != userID {
		project.AddMember(oldOwnerID)
	}
	if err := db.PutProject(ctx, project); err != nil {
		common.InternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}
