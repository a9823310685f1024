package store_test

import (
	"context"
	"testing"

	"taskboard/model"
	"taskboard/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemStoreUsers(t *testing.T) {
	ctx := context.Background()
	db := store.NewMemStore()

	_, err := db.GetUser(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = db.GetUserByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, store.ErrNotFound)

	alice := &model.User{UserID: "u1", Name: "Alice", Email: "alice@example.com"}
	bob := &model.User{UserID: "u2", Name: "Bob", Email: "bob@example.com"}
	require.NoError(t, db.PutUser(ctx, alice))
	require.NoError(t, db.PutUser(ctx, bob))

	got, err := db.GetUserByEmail(ctx, "bob@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u2", got.UserID)

	users, err := db.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "u1", users[0].UserID, "insertion order is stable")

	// mutations on a returned copy must not leak into the store
	got.Tokens = append(got.Tokens, "tok")
	fresh, err := db.GetUser(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, fresh.Tokens)

	require.NoError(t, db.DeleteUser(ctx, "u1"))
	_, err = db.GetUser(ctx, "u1")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestMemStoreProjects(t *testing.T) {
	ctx := context.Background()
	db := store.NewMemStore()

	require.NoError(t, db.PutProject(ctx, &model.Project{
		ProjectID: "p1", Title: "Board", OwnerID: "u1", MemberIDs: []string{"u2"},
	}))
	require.NoError(t, db.PutProject(ctx, &model.Project{
		ProjectID: "p2", Title: "Other", OwnerID: "u2",
	}))

	project, err := db.GetProjectOwnedBy(ctx, "p1", "u1")
	require.NoError(t, err)
	assert.Equal(t, "Board", project.Title)

	_, err = db.GetProjectOwnedBy(ctx, "p1", "u2")
	assert.ErrorIs(t, err, store.ErrNotFound, "non-owner lookup is masked as not found")

	found, err := db.FindProjectByTitle(ctx, "Board")
	require.NoError(t, err)
	require.NotNil(t, found)
	found, err = db.FindProjectByTitle(ctx, "Nope")
	require.NoError(t, err)
	assert.Nil(t, found)

	owned, err := db.ProjectsOwnedBy(ctx, "u2")
	require.NoError(t, err)
	require.Len(t, owned, 1)
	assert.Equal(t, "p2", owned[0].ProjectID)

	memberOf, err := db.ProjectsWithMember(ctx, "u2")
	require.NoError(t, err)
	require.Len(t, memberOf, 1)
	assert.Equal(t, "p1", memberOf[0].ProjectID)
}

func TestMemStoreColumns(t *testing.T) {
	ctx := context.Background()
	db := store.NewMemStore()

	require.NoError(t, db.PutColumn(ctx, &model.Column{ColumnID: "c1", ProjectID: "p1", Title: "To Do", Order: 0}))
	require.NoError(t, db.PutColumn(ctx, &model.Column{ColumnID: "c2", ProjectID: "p1", Title: "Done", Order: 1}))
	require.NoError(t, db.PutColumn(ctx, &model.Column{ColumnID: "c3", ProjectID: "p2", Title: "To Do", Order: 0}))

	count, err := db.CountColumns(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	conflict, err := db.FindColumnConflict(ctx, "p1", "To Do", 5)
	require.NoError(t, err)
	require.NotNil(t, conflict, "same title conflicts")

	conflict, err = db.FindColumnConflict(ctx, "p1", "Fresh", 1)
	require.NoError(t, err)
	require.NotNil(t, conflict, "same order conflicts")

	conflict, err = db.FindColumnConflict(ctx, "p1", "Fresh", 5)
	require.NoError(t, err)
	assert.Nil(t, conflict)

	conflict, err = db.FindColumnConflict(ctx, "p2", "Done", 1)
	require.NoError(t, err)
	assert.Nil(t, conflict, "conflicts are scoped per project")
}

func TestMemStoreTasks(t *testing.T) {
	ctx := context.Background()
	db := store.NewMemStore()

	require.NoError(t, db.PutTask(ctx, &model.Task{
		TaskID: "t1", ProjectID: "p1", ColumnID: "c1", Title: "First", Order: 0,
		AssigneeID: "u1", SubscriberIDs: []string{"u2"},
	}))
	require.NoError(t, db.PutTask(ctx, &model.Task{
		TaskID: "t2", ProjectID: "p1", ColumnID: "c2", Title: "Second", Order: 0,
	}))

	count, err := db.CountTasks(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	byColumn, err := db.TasksOfColumn(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, byColumn, 1)
	assert.Equal(t, "t1", byColumn[0].TaskID)

	conflict, err := db.FindTaskConflict(ctx, "p1", "First", "c9", 9)
	require.NoError(t, err)
	require.NotNil(t, conflict, "same title in project conflicts")

	conflict, err = db.FindTaskConflict(ctx, "p1", "Fresh", "c2", 0)
	require.NoError(t, err)
	require.NotNil(t, conflict, "same slot in column conflicts")

	conflict, err = db.FindTaskConflict(ctx, "p1", "Fresh", "c2", 1)
	require.NoError(t, err)
	assert.Nil(t, conflict)

	assigned, err := db.TasksWithAssignee(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, assigned, 1)

	subscribed, err := db.TasksWithSubscriber(ctx, "u2")
	require.NoError(t, err)
	require.Len(t, subscribed, 1)
	assert.Equal(t, "t1", subscribed[0].TaskID)
}
