package column_test

import (
	"context"
	"net/http"
	"testing"

	"taskboard/common"
	"taskboard/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// boardEnv registers an owner and a project. The project already carries
// the three default columns at orders 0..2.
func boardEnv(t *testing.T) (*testutil.Env, string, string) {
	t.Helper()
	e := testutil.NewEnv(t)
	_, token := e.RegisterUser(t, "Alice", "alice@example.com")
	projectID := e.CreateProject(t, token, "Board")
	return e, token, projectID
}

func TestCreateColumn(t *testing.T) {
	e, token, projectID := boardEnv(t)

	w := e.Do(t, http.MethodPost, "/columns", token, gin.H{
		"title": "Blocked", "projectId": projectID, "order": 3,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	body := testutil.DecodeMap(t, w)
	assert.Equal(t, "Blocked", body["title"])
	assert.Equal(t, projectID, body["projectId"])
}

func TestCreateColumnConflicts(t *testing.T) {
	e, token, projectID := boardEnv(t)

	w := e.Do(t, http.MethodPost, "/columns", token, gin.H{
		"title": "To Do", "projectId": projectID, "order": 7,
	})
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, common.ErrColumnExist, testutil.ErrorMessage(t, w))

	w = e.Do(t, http.MethodPost, "/columns", token, gin.H{
		"title": "Fresh", "projectId": projectID, "order": 0,
	})
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, common.ErrColumnExist, testutil.ErrorMessage(t, w))
}

func TestCreateColumnLimit(t *testing.T) {
	e, token, projectID := boardEnv(t)
	e.Cfg.MaxColumnsPerProject = 3

	w := e.Do(t, http.MethodPost, "/columns", token, gin.H{
		"title": "One Too Many", "projectId": projectID, "order": 3,
	})
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, common.ErrColumnNumberExceeded, testutil.ErrorMessage(t, w))
}

func TestCreateColumnUnknownProject(t *testing.T) {
	e, token, _ := boardEnv(t)

	w := e.Do(t, http.MethodPost, "/columns", token, gin.H{
		"title": "Orphan", "projectId": "3f2a8f1e-6c1d-4e6a-9b53-1f6d2f1c9a01", "order": 0,
	})
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, common.ErrProjectNotFound, testutil.ErrorMessage(t, w))

	w = e.Do(t, http.MethodPost, "/columns", token, gin.H{
		"title": "Orphan", "projectId": "bogus", "order": 0,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, common.ErrIDInvalid, testutil.ErrorMessage(t, w))
}

func TestColumnAccessDenied(t *testing.T) {
	e, _, projectID := boardEnv(t)
	_, bobToken := e.RegisterUser(t, "Bob", "bob@example.com")

	w := e.Do(t, http.MethodPost, "/columns", bobToken, gin.H{
		"title": "Sneaky", "projectId": projectID, "order": 3,
	})
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, common.ErrProjectNoAccess, testutil.ErrorMessage(t, w))

	columns, err := e.Store.ColumnsOfProject(context.Background(), projectID)
	require.NoError(t, err)
	w = e.Do(t, http.MethodGet, "/columns/"+columns[0].ColumnID, bobToken, nil)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestUpdateColumnTitle(t *testing.T) {
	e, token, projectID := boardEnv(t)
	columns, err := e.Store.ColumnsOfProject(context.Background(), projectID)
	require.NoError(t, err)
	columnID := columns[0].ColumnID

	// renaming onto another column's title is refused
	w := e.Do(t, http.MethodPut, "/columns/"+columnID, token, gin.H{"title": "Done"})
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, common.ErrColumnExist, testutil.ErrorMessage(t, w))

	// renaming to its own title is a no-op, not a conflict
	w = e.Do(t, http.MethodPut, "/columns/"+columnID, token, gin.H{"title": "To Do"})
	require.Equal(t, http.StatusOK, w.Code)

	w = e.Do(t, http.MethodPut, "/columns/"+columnID, token, gin.H{"title": "Backlog"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Backlog", testutil.DecodeMap(t, w)["title"])
}

func TestUpdateColumnSetReorders(t *testing.T) {
	e, token, projectID := boardEnv(t)
	columns, err := e.Store.ColumnsOfProject(context.Background(), projectID)
	require.NoError(t, err)
	require.Len(t, columns, 3)

	// swap the first two columns, leave the third alone
	w := e.Do(t, http.MethodPatch, "/columns", token, []gin.H{
		{"id": columns[0].ColumnID, "order": 1},
		{"id": columns[1].ColumnID, "order": 0},
		{"id": columns[2].ColumnID, "order": 2},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	changed := testutil.DecodeList(t, w)
	assert.Len(t, changed, 2, "unchanged columns are not rewritten")

	first, err := e.Store.GetColumn(context.Background(), columns[0].ColumnID)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Order)
}

func TestUpdateColumnSetRejectsDuplicates(t *testing.T) {
	e, token, projectID := boardEnv(t)
	columns, err := e.Store.ColumnsOfProject(context.Background(), projectID)
	require.NoError(t, err)

	w := e.Do(t, http.MethodPatch, "/columns", token, []gin.H{
		{"id": columns[0].ColumnID, "order": 5},
		{"id": columns[0].ColumnID, "order": 6},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, common.ErrColumnUpdateRepeated, testutil.ErrorMessage(t, w))

	w = e.Do(t, http.MethodPatch, "/columns", token, []gin.H{
		{"id": columns[0].ColumnID, "order": 5},
		{"id": columns[1].ColumnID, "order": 5},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, common.ErrColumnUpdateRepeated, testutil.ErrorMessage(t, w))
}

func TestUpdateColumnSetRejectsMixedProjects(t *testing.T) {
	e, token, projectID := boardEnv(t)
	otherID := e.CreateProject(t, token, "Other")

	ctx := context.Background()
	columns, err := e.Store.ColumnsOfProject(ctx, projectID)
	require.NoError(t, err)
	otherColumns, err := e.Store.ColumnsOfProject(ctx, otherID)
	require.NoError(t, err)

	w := e.Do(t, http.MethodPatch, "/columns", token, []gin.H{
		{"id": columns[0].ColumnID, "order": 5},
		{"id": otherColumns[0].ColumnID, "order": 6},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, common.ErrColumnSameProject, testutil.ErrorMessage(t, w))

	// a failed batch writes nothing
	first, err := e.Store.GetColumn(ctx, columns[0].ColumnID)
	require.NoError(t, err)
	assert.Equal(t, 0, first.Order)
}

func TestDeleteColumnCascadesToTasks(t *testing.T) {
	e, token, projectID := boardEnv(t)
	ctx := context.Background()
	columns, err := e.Store.ColumnsOfProject(ctx, projectID)
	require.NoError(t, err)
	columnID := columns[0].ColumnID
	taskID := e.CreateTask(t, token, columnID, "Chore", 0)

	w := e.Do(t, http.MethodDelete, "/columns/"+columnID, token, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	_, err = e.Store.GetColumn(ctx, columnID)
	assert.Error(t, err)
	_, err = e.Store.GetTask(ctx, taskID)
	assert.Error(t, err)

	w = e.Do(t, http.MethodDelete, "/columns/"+columnID, token, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, common.ErrColumnNotFound, testutil.ErrorMessage(t, w))
}
