package column

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

func ColumnController(router *gin.Engine, db store.Store, cfg *config.Config) {
	authed := middleware.AccessTokenMiddleware(cfg)
	router.POST("/columns", authed, func(c *gin.Context) {
		CreateColumn(c, db, cfg)
	})
	router.GET("/columns/:id", authed, func(c *gin.Context) {
		GetColumn(c, db)
	})
	router.PUT("/columns/:id", authed, func(c *gin.Context) {
		UpdateColumn(c, db)
	})
	router.PATCH("/columns", authed, func(c *gin.Context) {
		UpdateColumnSet(c, db)
	})
	router.DELETE("/columns/:id", authed, func(c *gin.Context) {
		DeleteColumn(c, db)
	})
}

func CreateColumn(c *gin.Context, db store.Store, cfg *config.Config) {
	var request dto.CreateColumnRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": common.ErrBodyInvalid})
		return
	}
	if !services.IsValidID(request.ProjectID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": common.ErrIDInvalid})
		return
	}
	if err := services.ValidateTitle(request.Title); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	project, err := db.GetProject(ctx, request.ProjectID)
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

	// The count limit is checked before the duplicate probe.
	count, err := db.CountColumns(ctx, request.ProjectID)
	if err != nil {
		common.InternalError(c, err)
		return
	}
	if count >= cfg.MaxColumnsPerProject {
		c.JSON(http.StatusForbidden, gin.H{"error": common.ErrColumnNumberExceeded})
		return
	}

	duplicate, err := db.FindColumnConflict(ctx, request.ProjectID, request.Title, *request.Order)
	if err != nil {
		common.InternalError(c, err)
		return
	}
	if duplicate != nil {
		c.JSON(http.StatusConflict, gin.H{"error": common.ErrColumnExist})
		return
	}

	newColumn := model.Column{
		ColumnID:  uuid.New().String(),
		ProjectID: request.ProjectID,
		Title:     request.Title,
		Order:     *request.Order,
		CreatedAt: time.Now(),
	}
	if err := db.PutColumn(ctx, &newColumn); err != nil {
		common.InternalError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newColumn)
}

// resolveColumn loads the column and runs the access check, answering the
// error responses itself. The column's project may be gone, which is a 404
// distinct from a plain denial.
func resolveColumn(c *gin.Context, db store.Store) *model.Column {
	columnID := c.Param("id")
	if !services.IsValidID(columnID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": common.ErrIDInvalid})
		return nil
	}
	ctx := c.Request.Context()
	column, err := db.GetColumn(ctx, columnID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": common.ErrColumnNotFound})
			return nil
		}
		common.InternalError(c, err)
		return nil
	}
	userID := c.MustGet("userId").(string)
	hasAccess, err := services.ColumnAccess(ctx, db, column, userID)
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
	return column
}

func GetColumn(c *gin.Context, db store.Store) {
	column := resolveColumn(c, db)
	if column == nil {
		return
	}
	c.JSON(http.StatusOK, column)
}

// UpdateColumn changes the title only; any other field in the payload is
// ignored.
func UpdateColumn(c *gin.Context, db store.Store) {
	var request dto.UpdateColumnRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": common.ErrBodyInvalid})
		return
	}
	if err := services.ValidateTitle(request.Title); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	column := resolveColumn(c, db)
	if column == nil {
		return
	}

	ctx := c.Request.Context()
	duplicate, err := db.FindColumnByTitle(ctx, column.ProjectID, request.Title)
	if err != nil {
		common.InternalError(c, err)
		return
	}
	if duplicate != nil && duplicate.ColumnID != column.ColumnID {
		c.JSON(http.StatusConflict, gin.H{"error": common.ErrColumnExist})
		return
	}

	column.Title = request.Title
	if err := db.PutColumn(ctx, column); err != nil {
		common.InternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, column)
}

// UpdateColumnSet reorders columns in bulk. The whole batch is validated
// before any write: batch-internal id/order duplicates are rejected, every
// column must exist and belong to the first column's project, and only
// columns whose order actually changes are buffered for saving.
func UpdateColumnSet(c *gin.Context, db store.Store) {
	var request []dto.ColumnSetItem
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": common.ErrBodyInvalid})
		return
	}

	ctx := c.Request.Context()
	userID := c.MustGet("userId").(string)
	buffer := make([]model.Column, 0, len(request))
	var projectID string

	for _, item := range request {
		if !services.IsValidID(item.ID) {
			c.JSON(http.StatusBadRequest, gin.H{"error": common.ErrIDInvalid})
			return
		}
		if item.Order == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": common.ErrBodyInvalid})
			return
		}
		for i := range buffer {
			if buffer[i].ColumnID == item.ID || buffer[i].Order == *item.Order {
				c.JSON(http.StatusBadRequest, gin.H{"error": common.ErrColumnUpdateRepeated})
				return
			}
		}
		column, err := db.GetColumn(ctx, item.ID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": common.ErrColumnNotFound})
				return
			}
			common.InternalError(c, err)
			return
		}
		if projectID == "" {
			projectID = column.ProjectID
			hasAccess, err := services.ColumnAccess(ctx, db, column, userID)
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
		} else if column.ProjectID != projectID {
			c.JSON(http.StatusBadRequest, gin.H{"error": common.ErrColumnSameProject})
			return
		}
		if column.Order != *item.Order {
			column.Order = *item.Order
			buffer = append(buffer, *column)
		}
	}

	for i := range buffer {
		if err := db.PutColumn(ctx, &buffer[i]); err != nil {
			common.InternalError(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, buffer)
}

// DeleteColumn cascades to the column's tasks.
func DeleteColumn(c *gin.Context, db store.Store) {
	column := resolveColumn(c, db)
	if column == nil {
		return
	}
	ctx := c.Request.Context()
	tasks, err := db.TasksOfColumn(ctx, column.ColumnID)
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
	if err := db.DeleteColumn(ctx, column.ColumnID); err != nil {
		common.InternalError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
