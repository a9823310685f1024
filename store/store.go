package store

import (
	"context"
	"errors"

	"taskboard/model"
)

// ErrNotFound is returned by every Get* method when the document does not
// exist. Find* methods return (nil, nil) on a miss instead, since a miss is
// the expected outcome for duplicate probes.
var ErrNotFound = errors.New("document not found")

// Store is the gateway to the document database. Handlers and the access
// relation resolve entity references through it; nothing else touches the
// database driver.
type Store interface {
	GetUser(ctx context.Context, id string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	PutUser(ctx context.Context, user *model.User) error
	DeleteUser(ctx context.Context, id string) error

	GetProject(ctx context.Context, id string) (*model.Project, error)
	// GetProjectOwnedBy returns ErrNotFound both when the project is absent
	// and when it is not owned by ownerID, so callers cannot tell the two
	// apart (existence masking for owner-scoped operations).
	GetProjectOwnedBy(ctx context.Context, id, ownerID string) (*model.Project, error)
	FindProjectByTitle(ctx context.Context, title string) (*model.Project, error)
	ListProjects(ctx context.Context) ([]model.Project, error)
	ProjectsOwnedBy(ctx context.Context, userID string) ([]model.Project, error)
	ProjectsWithMember(ctx context.Context, userID string) ([]model.Project, error)
	PutProject(ctx context.Context, project *model.Project) error
	DeleteProject(ctx context.Context, id string) error

	GetColumn(ctx context.Context, id string) (*model.Column, error)
	ColumnsOfProject(ctx context.Context, projectID string) ([]model.Column, error)
	CountColumns(ctx context.Context, projectID string) (int, error)
	// FindColumnConflict probes for a column in the project whose title or
	// order collides with the given values.
	FindColumnConflict(ctx context.Context, projectID, title string, order int) (*model.Column, error)
	FindColumnByTitle(ctx context.Context, projectID, title string) (*model.Column, error)
	PutColumn(ctx context.Context, column *model.Column) error
	DeleteColumn(ctx context.Context, id string) error

	GetTask(ctx context.Context, id string) (*model.Task, error)
	TasksOfProject(ctx context.Context, projectID string) ([]model.Task, error)
	TasksOfColumn(ctx context.Context, columnID string) ([]model.Task, error)
	CountTasks(ctx context.Context, projectID string) (int, error)
	// FindTaskConflict probes for a task with the same title in the project
	// or the same order in the column.
	FindTaskConflict(ctx context.Context, projectID, title, columnID string, order int) (*model.Task, error)
	FindTaskByTitle(ctx context.Context, projectID, title string) (*model.Task, error)
	TasksWithAssignee(ctx context.Context, userID string) ([]model.Task, error)
	TasksWithSubscriber(ctx context.Context, userID string) ([]model.Task, error)
	PutTask(ctx context.Context, task *model.Task) error
	DeleteTask(ctx context.Context, id string) error
}
