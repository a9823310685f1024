package task

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

func TaskController(router *gin.Engine, db store.Store, cfg *config.Config) {
	authed := middleware.AccessTokenMiddleware(cfg)
	router.POST("/tasks", authed, func(c *gin.Context) {
		CreateTask(c, db, cfg)
	})
	router.GET("/tasks/:id", authed, func(c *gin.Context) {
		GetTask(c, db)
	})
	router.PUT("/tasks/:id", authed, func(c *gin.Context) {
		UpdateTask(c, db, cfg)
	})
	router.PATCH("/tasks", authed, func(c *gin.Context) {
		UpdateTaskSet(c, db, cfg)
	})
	router.DELETE("/tasks/:id", authed, func(c *gin.Context) {
		DeleteTask(c, db, cfg)
	})
}

func CreateTask(c *gin.Context, db store.Store, cfg *config.Config) {
	var request dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": common.ErrBodyInvalid})
		return
	}
	if !services.IsValidID(request.ColumnID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": common.ErrIDInvalid})
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
	priority := 0
	if request.Priority != nil {
		if *request.Priority < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": common.ErrPriorityValue})
			return
		}
		priority = *request.Priority
	}

	ctx := c.Request.Context()
	column, err := db.GetColumn(ctx, request.ColumnID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": common.ErrColumnNotFound})
			return
		}
		common.InternalError(c, err)
		return
	}
	project, err := db.GetProject(ctx, column.ProjectID)
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

	// An assignee has to be on the project too.
	if request.AssigneeID != "" {
		if !services.IsValidID(request.AssigneeID) {
			c.JSON(http.StatusBadRequest, gin.H{"error": common.ErrIDInvalid})
			return
		}
		if !services.ProjectAccess(project, request.AssigneeID, false) {
			c.JSON(http.StatusForbidden, gin.H{"error": common.ErrAssigneeNoAccess})
			return
		}
	}

	count, err := db.CountTasks(ctx, project.ProjectID)
	if err != nil {
		common.InternalError(c, err)
		return
	}
	if count >= cfg.MaxTasksPerProject {
		c.JSON(http.StatusForbidden, gin.H{"error": common.ErrTaskNumberExceeded})
		return
	}

	duplicate, err := db.FindTaskConflict(ctx, project.ProjectID, request.Title, request.ColumnID, *request.Order)
	if err != nil {
		common.InternalError(c, err)
		return
	}
	if duplicate != nil {
		c.JSON(http.StatusConflict, gin.H{"error": common.ErrTaskExist})
		return
	}

	newTask := model.Task{
		TaskID:      uuid.New().String(),
		ProjectID:   project.ProjectID,
		ColumnID:    request.ColumnID,
		Title:       request.Title,
		AssigneeID:  request.AssigneeID,
		Priority:    priority,
		Order:       *request.Order,
		Description: request.Description,
		CreatedAt:   time.Now(),
	}
	if err := db.PutTask(ctx, &newTask); err != nil {
		common.InternalError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newTask)
}

// resolveTask loads the task and runs the access check, answering the error
// responses itself.
func resolveTask(c *gin.Context, db store.Store) *model.Task {
	taskID := c.Param("id")
	if !services.IsValidID(taskID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": common.ErrIDInvalid})
		return nil
	}
	ctx := c.Request.Context()
	task, err := db.GetTask(ctx, taskID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": common.ErrTaskNotFound})
			return nil
		}
		common.InternalError(c, err)
		return nil
	}
	userID := c.MustGet("userId").(string)
	hasAccess, err := services.TaskAccess(ctx, db, task, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": common.ErrProjectNotFound})
			return nil
		}
		common.InternalError(c, err)
		return nil
	}
	if !hasAccess {
		c.JSON(http.StatusForbidden, gin.H{"error": common.ErrProjectNoAccess})
		return nil
	}
	return task
}

func GetTask(c *gin.Context, db store.Store) {
	task := resolveTask(c, db)
	if task == nil {
		return
	}
	c.JSON(http.StatusOK, task)
}

// UpdateTask applies only the fields present in the payload. An empty
// assigneeId string unassigns the task; a missing one leaves it alone.
func UpdateTask(c *gin.Context, db store.Store, cfg *config.Config) {
	var request dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": common.ErrBodyInvalid})
		return
	}
	if request.Title != nil {
		if err := services.ValidateTitle(*request.Title); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	if request.Description != nil {
		if err := services.ValidateDescription(*request.Description); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	if request.Priority != nil && *request.Priority < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": common.ErrPriorityValue})
		return
	}

	task := resolveTask(c, db)
	if task == nil {
		return
	}
	ctx := c.Request.Context()

	if request.Title != nil && *request.Title != task.Title {
		duplicate, err := db.FindTaskByTitle(ctx, task.ProjectID, *request.Title)
		if err != nil {
			common.InternalError(c, err)
			return
		}
		if duplicate != nil && duplicate.TaskID != task.TaskID {
			c.JSON(http.StatusConflict, gin.H{"error": common.ErrTaskExist})
			return
		}
		task.Title = *request.Title
	}

	if request.AssigneeID != nil {
		assigneeID := *request.AssigneeID
		if assigneeID == "" {
			task.AssigneeID = ""
		} else {
			if !services.IsValidID(assigneeID) {
				c.JSON(http.StatusBadRequest, gin.H{"error": common.ErrIDInvalid})
				return
			}
			project, err := db.GetProject(ctx, task.ProjectID)
			if err != nil {
				common.InternalError(c, err)
				return
			}
			if !services.ProjectAccess(project, assigneeID, false) {
				c.JSON(http.StatusForbidden, gin.H{"error": common.ErrAssigneeNoAccess})
				return
			}
			task.AssigneeID = assigneeID
		}
	}
	if request.Priority != nil {
		task.Priority = *request.Priority
	}
	if request.Description != nil {
		task.Description = *request.Description
	}

	if err := db.PutTask(ctx, task); err != nil {
		common.InternalError(c, err)
		return
	}
	services.NotifySubscribers(ctx, db, cfg, task, "updated")
	c.JSON(http.StatusOK, task)
}

// UpdateTaskSet moves tasks between columns and reorders them in bulk. The
// whole batch is validated before any write; a batch entry repeating an id
// or landing on an already-claimed (column, order) slot is rejected.
func UpdateTaskSet(c *gin.Context, db store.Store, cfg *config.Config) {
	var request []dto.TaskSetItem
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": common.ErrBodyInvalid})
		return
	}

	ctx := c.Request.Context()
	userID := c.MustGet("userId").(string)
	buffer := make([]model.Task, 0, len(request))
	columnsSeen := make(map[string]bool)
	var projectID string

	for _, item := range request {
		if !services.IsValidID(item.ID) || !services.IsValidID(item.ColumnID) {
			c.JSON(http.StatusBadRequest, gin.H{"error": common.ErrIDInvalid})
			return
		}
		if item.Order == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": common.ErrBodyInvalid})
			return
		}
		for i := range buffer {
			if buffer[i].TaskID == item.ID ||
				(buffer[i].ColumnID == item.ColumnID && buffer[i].Order == *item.Order) {
				c.JSON(http.StatusBadRequest, gin.H{"error": common.ErrTaskUpdateRepeated})
				return
			}
		}
		task, err := db.GetTask(ctx, item.ID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": common.ErrTaskNotFound})
				return
			}
			common.InternalError(c, err)
			return
		}
		if projectID == "" {
			projectID = task.ProjectID
			hasAccess, err := services.TaskAccess(ctx, db, task, userID)
			if err != nil {
				if errors.Is(err, store.ErrNotFound) {
					c.JSON(http.StatusNotFound, gin.H{"error": common.ErrProjectNotFound})
					return
				}
				common.InternalError(c, err)
				return
			}
			if !hasAccess {
				c.JSON(http.StatusForbidden, gin.H{"error": common.ErrProjectNoAccess})
				return
			}
		} else if task.ProjectID != projectID {
			c.JSON(http.StatusBadRequest, gin.H{"error": common.ErrTaskSameProject})
			return
		}
		if !columnsSeen[item.ColumnID] {
			column, err := db.GetColumn(ctx, item.ColumnID)
			if err != nil {
				if errors.Is(err, store.ErrNotFound) {
					c.JSON(http.StatusNotFound, gin.H{"error": common.ErrColumnNotFound})
					return
				}
				common.InternalError(c, err)
				return
			}
			if column.ProjectID != projectID {
				c.JSON(http.StatusBadRequest, gin.H{"error": common.ErrTaskSameProject})
				return
			}
			columnsSeen[item.ColumnID] = true
		}
		if task.ColumnID != item.ColumnID || task.Order != *item.Order {
			task.ColumnID = item.ColumnID
			task.Order = *item.Order
			buffer = append(buffer, *task)
		}
	}

	for i := range buffer {
		if err := db.PutTask(ctx, &buffer[i]); err != nil {
			common.InternalError(c, err)
			return
		}
		services.NotifySubscribers(ctx, db, cfg, &buffer[i], "updated")
	}
	c.JSON(http.StatusOK, buffer)
}

func DeleteTask(c *gin.Context, db store.Store, cfg *config.Config) {
	task := resolveTask(c, db)
	if task == nil {
		return
	}
	ctx := c.Request.Context()
	if err := db.DeleteTask(ctx, task.TaskID); err != nil {
		common.InternalError(c, err)
		return
	}
	services.NotifySubscribers(ctx, db, cfg, task, "deleted")
	c.Status(http.StatusNoContent)
}
