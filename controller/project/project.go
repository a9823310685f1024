package project

import (
	"errors"
	"net/http"
	"time"

	"taskboard/common"
	"taskboard/config"
	"taskboard/dto"
	"taskboard/middleware"
	"taskboard/model"
	"taskboard/services"
	"taskboard/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Every new project starts with these columns.
var defaultColumnTitles = []string{"To Do", "In Progress", "Done"}

func ProjectController(router *gin.Engine, db store.Store, cfg *config.Config) {
	authed := middleware.AccessTokenMiddleware(cfg)
	router.POST("/projects", authed, func(c *gin.Context) {
		CreateProject(c, db)
	})
	router.GET("/projects", authed, func(c *gin.Context) {
		GetAllProjects(c, db)
	})
	router.GET("/projects/:id", authed, func(c *gin.Context) {
		GetProject(c, db)
	})
	router.PUT("/projects/:id", authed, func(c *gin.Context) {
		UpdateProject(c, db)
	})
	router.DELETE("/projects/:id", authed, func(c *gin.Context) {
		DeleteProject(c, db)
	})
}

func CreateProject(c *gin.Context, db store.Store) {
	userID := c.MustGet("userId").(string)
	var request dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": common.ErrBodyInvalid})
		return
	}
	if err := services.ValidateTitle(request.Title); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := services.ValidateDescription(request.Description); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	duplicate, err := db.FindProjectByTitle(ctx, request.Title)
	if err != nil {
		common.InternalError(c, err)
		return
	}
	if duplicate != nil {
		c.JSON(http.StatusConflict, gin.H{"error": common.ErrProjectTitleExist})
		return
	}

	newProject := model.Project{
		ProjectID:   uuid.New().String(),
		Title:       request.Title,
		OwnerID:     userID,
		Description: request.Description,
		CreatedAt:   time.Now(),
	}
	if err := db.PutProject(ctx, &newProject); err != nil {
		common.InternalError(c, err)
		return
	}

	for order, title := range defaultColumnTitles {
		column := model.Column{
			ColumnID:  uuid.New().String(),
			ProjectID: newProject.ProjectID,
			Title:     title,
			Order:     order,
			CreatedAt: time.Now(),
		}
		if err := db.PutColumn(ctx, &column); err != nil {
			common.InternalError(c, err)
			return
		}
	}

	c.JSON(http.StatusCreated, newProject)
}

func GetAllProjects(c *gin.Context, db store.Store) {
	projects, err := db.ListProjects(c.Request.Context())
	if err != nil {
		common.InternalError(c, err)
		return
	}
	summaries := make([]model.ProjectSummary, 0, len(projects))
	for i := range projects {
		summaries = append(summaries, projects[i].Summary())
	}
	c.JSON(http.StatusOK, summaries)
}

func GetProject(c *gin.Context, db store.Store) {
	projectID := c.Param("id")
	if !services.IsValidID(projectID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": common.ErrIDInvalid})
		return
	}
	project, err := db.GetProject(c.Request.Context(), projectID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": common.ErrProjectNotFound})
			return
		}
		common.InternalError(c, err)
		return
	}
	userID := c.MustGet("userId").(string)
	if !services.ProjectAccess(project, userID, false) {
		c.JSON(http.StatusForbidden, gin.H{"error": common.ErrProjectNoAccess})
		return
	}
	c.JSON(http.StatusOK, project)
}

// UpdateProject is owner-only; the owner-scoped lookup answers 404 for both
// a missing project and a non-owner caller so existence is not leaked.
func UpdateProject(c *gin.Context, db store.Store) {
	projectID := c.Param("id")
	if !services.IsValidID(projectID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": common.ErrIDInvalid})
		return
	}
	var request dto.UpdateProjectRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": common.ErrBodyInvalid})
		return
	}
	if request.Title != "" {
		if err := services.ValidateTitle(request.Title); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	if err := services.ValidateDescription(request.Description); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	userID := c.MustGet("userId").(string)
	project, err := db.GetProjectOwnedBy(ctx, projectID, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": common.ErrProjectNotFoundOrNoAccess})
			return
		}
		common.InternalError(c, err)
		return
	}

	if request.Title != "" {
		project.Title = request.Title
	}
	if request.Description != "" {
		project.Description = request.Description
	}
	if err := db.PutProject(ctx, project); err != nil {
		common.InternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

// DeleteProject cascades to the project's columns and tasks.
func DeleteProject(c *gin.Context, db store.Store) {
	projectID := c.Param("id")
	if !services.IsValidID(projectID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": common.ErrIDInvalid})
		return
	}
	ctx := c.Request.Context()
	userID := c.MustGet("userId").(string)
	if _, err := db.GetProjectOwnedBy(ctx, projectID, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": common.ErrProjectNotFoundOrNoAccess})
			return
		}
		common.InternalError(c, err)
		return
	}

	tasks, err := db.TasksOfProject(ctx, projectID)
	if err != nil {
		common.InternalError(c, err)
		return
	}
	for i := range tasks {
		if err := db.DeleteTask(ctx, tasks[i].TaskID); err != nil {
			common.InternalError(c, err)
			return
		}
	}

	columns, err := db.ColumnsOfProject(ctx, projectID)
	if err != nil {
		common.InternalError(c, err)
		return
	}
	for i := range columns {
		if err := db.DeleteColumn(ctx, columns[i].ColumnID); err != nil {
			common.InternalError(c, err)
			return
		}
	}

	if err := db.DeleteProject(ctx, projectID); err != nil {
		common.InternalError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
