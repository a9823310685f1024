package services

import (
	"context"

	"taskboard/model"
	"taskboard/store"
)

// ProjectAccess is the single access relation every project, column and
// task operation consults. It is read-only and side-effect free.
func ProjectAccess(project *model.Project, userID string, onlyOwner bool) bool {
	if project.OwnerID == userID {
		return true
	}
	if onlyOwner {
		return false
	}
	return project.HasMember(userID)
}

// ColumnAccess resolves the column's owning project through the store and
// delegates to ProjectAccess. A missing project surfaces as
// store.ErrNotFound, which callers must keep distinct from a plain denial.
func ColumnAccess(ctx context.Context, db store.Store, column *model.Column, userID string) (bool, error) {
	project, err := db.GetProject(ctx, column.ProjectID)
	if err != nil {
		return false, err
	}
	return ProjectAccess(project, userID, false), nil
}

func TaskAccess(ctx context.Context, db store.Store, task *model.Task, userID string) (bool, error) {
	project, err := db.GetProject(ctx, task.ProjectID)
	if err != nil {
		return false, err
	}
	return ProjectAccess(project, userID, false), nil
}
