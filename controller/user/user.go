package user

import (
	"context"
	"errors"
	"net/http"

	"taskboard/common"
	"taskboard/config"
	"taskboard/dto"
	"taskboard/middleware"
	"taskboard/model"
	"taskboard/services"
	"taskboard/store"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

func UserController(router *gin.Engine, db store.Store, cfg *config.Config) {
	authed := middleware.AccessTokenMiddleware(cfg)
	router.GET("/users", authed, func(c *gin.Context) {
		GetAllUsers(c, db)
	})
	router.GET("/users/:id", authed, func(c *gin.Context) {
		GetUser(c, db)
	})
	router.PUT("/users/:id", authed, func(c *gin.Context) {
		UpdateUser(c, db, cfg)
	})
	router.DELETE("/users/:id", authed, func(c *gin.Context) {
		DeleteUser(c, db)
	})
}

// GetAllUsers lists everyone except the caller.
func GetAllUsers(c *gin.Context, db store.Store) {
	callerID := c.MustGet("userId").(string)
	users, err := db.ListUsers(c.Request.Context())
	if err != nil {
		common.InternalError(c, err)
		return
	}
	summaries := make([]model.UserSummary, 0, len(users))
	for i := range users {
		if users[i].UserID == callerID {
			continue
		}
		summaries = append(summaries, users[i].Summary())
	}
	c.JSON(http.StatusOK, summaries)
}

func userDetail(ctx context.Context, db store.Store, user *model.User) (gin.H, error) {
	memberOf, err := db.ProjectsWithMember(ctx, user.UserID)
	if err != nil {
		return nil, err
	}
	ownedBy, err := db.ProjectsOwnedBy(ctx, user.UserID)
	if err != nil {
		return nil, err
	}
	projects := make([]model.ProjectSummary, 0, len(memberOf))
	for i := range memberOf {
		projects = append(projects, memberOf[i].Summary())
	}
	ownProjects := make([]model.ProjectSummary, 0, len(ownedBy))
	for i := range ownedBy {
		ownProjects = append(ownProjects, ownedBy[i].Summary())
	}
	return gin.H{
		"id":          user.UserID,
		"name":        user.Name,
		"email":       user.Email,
		"isVerified":  user.IsVerified,
		"projects":    projects,
		"ownProjects": ownProjects,
	}, nil
}

func GetUser(c *gin.Context, db store.Store) {
	userID := c.Param("id")
	if !services.IsValidID(userID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": common.ErrIDInvalid})
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
	detail, err := userDetail(ctx, db, user)
	if err != nil {
		common.InternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func UpdateUser(c *gin.Context, db store.Store, cfg *config.Config) {
	userID := c.Param("id")
	if !services.IsValidID(userID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": common.ErrIDInvalid})
		return
	}
	if userID != c.MustGet("userId").(string) {
		c.JSON(http.StatusForbidden, gin.H{"error": common.ErrAccessDenied})
		return
	}
	var request dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": common.ErrBodyInvalid})
		return
	}
	if request.Name != "" {
		if err := services.ValidateName(request.Name); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	if request.Password != "" {
		if err := services.ValidatePassword(cfg, request.Password); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
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

	if request.Name != "" {
		user.Name = request.Name
	}
	if request.Password != "" {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
		if err != nil {
			common.InternalError(c, err)
			return
		}
		user.Password = string(hashedPassword)
	}
	if err := db.PutUser(ctx, user); err != nil {
		common.InternalError(c, err)
		return
	}
	detail, err := userDetail(ctx, db, user)
	if err != nil {
		common.InternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// DeleteUser refuses while the user still owns projects; otherwise it
// removes the user and scrubs every reference: project membership, task
// assignment, task subscriptions.
func DeleteUser(c *gin.Context, db store.Store) {
	userID := c.Param("id")
	if !services.IsValidID(userID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": common.ErrIDInvalid})
		return
	}
	if userID != c.MustGet("userId").(string) {
		c.JSON(http.StatusForbidden, gin.H{"error": common.ErrAccessDenied})
		return
	}

	ctx := c.Request.Context()
	if _, err := db.GetUser(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": common.ErrUserNotFound})
			return
		}
		common.InternalError(c, err)
		return
	}

	owned, err := db.ProjectsOwnedBy(ctx, userID)
	if err != nil {
		common.InternalError(c, err)
		return
	}
	if len(owned) > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": common.ErrUserOwns})
		return
	}

	memberOf, err := db.ProjectsWithMember(ctx, userID)
	if err != nil {
		common.InternalError(c, err)
		return
	}
	for i := range memberOf {
		project := memberOf[i]
		project.RemoveMember(userID)
		if err := db.PutProject(ctx, &project); err != nil {
			common.InternalError(c, err)
			return
		}
	}

	assigned, err := db.TasksWithAssignee(ctx, userID)
	if err != nil {
		common.InternalError(c, err)
		return
	}
	for i := range assigned {
		task := assigned[i]
		task.AssigneeID = ""
		if err := db.PutTask(ctx, &task); err != nil {
			common.InternalError(c, err)
			return
		}
	}

	subscribed, err := db.TasksWithSubscriber(ctx, userID)
	if err != nil {
		common.InternalError(c, err)
		return
	}
	for i := range subscribed {
		task := subscribed[i]
		task.RemoveSubscriber(userID)
		if err := db.PutTask(ctx, &task); err != nil {
			common.InternalError(c, err)
			return
		}
	}

	if err := db.DeleteUser(ctx, userID); err != nil {
		common.InternalError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
