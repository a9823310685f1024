package project_test

import (
	"context"
	"net/http"
	"testing"

	"taskboard/common"
	"taskboard/services"
	"taskboard/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProjectSeedsDefaultColumns(t *testing.T) {
	e := testutil.NewEnv(t)
	aliceID, aliceToken := e.RegisterUser(t, "Alice", "alice@example.com")

	w := e.Do(t, http.MethodPost, "/projects", aliceToken, gin.H{
		"title": "Board", "description": "team board",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	body := testutil.DecodeMap(t, w)
	assert.Equal(t, aliceID, body["ownerId"])
	projectID := body["id"].(string)

	columns, err := e.Store.ColumnsOfProject(context.Background(), projectID)
	require.NoError(t, err)
	require.Len(t, columns, 3)
	assert.Equal(t, "To Do", columns[0].Title)
	assert.Equal(t, "In Progress", columns[1].Title)
	assert.Equal(t, "Done", columns[2].Title)
	for i, column := range columns {
		assert.Equal(t, i, column.Order)
	}
}

func TestCreateProjectDuplicateTitle(t *testing.T) {
	e := testutil.NewEnv(t)
	_, aliceToken := e.RegisterUser(t, "Alice", "alice@example.com")
	e.CreateProject(t, aliceToken, "Board")

	w := e.Do(t, http.MethodPost, "/projects", aliceToken, gin.H{"title": "Board"})
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, common.ErrProjectTitleExist, testutil.ErrorMessage(t, w))
}

func TestGetProjectAccess(t *testing.T) {
	e := testutil.NewEnv(t)
	_, aliceToken := e.RegisterUser(t, "Alice", "alice@example.com")
	_, bobToken := e.RegisterUser(t, "Bob", "bob@example.com")
	projectID := e.CreateProject(t, aliceToken, "Board")

	w := e.Do(t, http.MethodGet, "/projects/"+projectID, bobToken, nil)
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, common.ErrProjectNoAccess, testutil.ErrorMessage(t, w))

	e.AddMember(t, aliceToken, bobToken, projectID, "bob@example.com")
	w = e.Do(t, http.MethodGet, "/projects/"+projectID, bobToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// a project list is visible to any signed-in user
	w = e.Do(t, http.MethodGet, "/projects", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, testutil.DecodeList(t, w), 1)
}

func TestUpdateProjectMasksNonOwner(t *testing.T) {
	e := testutil.NewEnv(t)
	_, aliceToken := e.RegisterUser(t, "Alice", "alice@example.com")
	_, bobToken := e.RegisterUser(t, "Bob", "bob@example.com")
	projectID := e.CreateProject(t, aliceToken, "Board")
	e.AddMember(t, aliceToken, bobToken, projectID, "bob@example.com")

	// even a member gets 404, not 403, on owner-only operations
	w := e.Do(t, http.MethodPut, "/projects/"+projectID, bobToken, gin.H{"title": "Hijacked"})
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, common.ErrProjectNotFoundOrNoAccess, testutil.ErrorMessage(t, w))

	w = e.Do(t, http.MethodPut, "/projects/"+projectID, aliceToken, gin.H{"title": "Renamed"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Renamed", testutil.DecodeMap(t, w)["title"])
}

func TestDeleteProjectCascades(t *testing.T) {
	e := testutil.NewEnv(t)
	ctx := context.Background()
	_, aliceToken := e.RegisterUser(t, "Alice", "alice@example.com")
	projectID := e.CreateProject(t, aliceToken, "Board")

	columns, err := e.Store.ColumnsOfProject(ctx, projectID)
	require.NoError(t, err)
	taskID := e.CreateTask(t, aliceToken, columns[0].ColumnID, "Chore", 0)

	w := e.Do(t, http.MethodDelete, "/projects/"+projectID, aliceToken, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	remaining, err := e.Store.ColumnsOfProject(ctx, projectID)
	require.NoError(t, err)
	assert.Empty(t, remaining)
	_, err = e.Store.GetTask(ctx, taskID)
	assert.Error(t, err)
}

func TestMemberInviteFlow(t *testing.T) {
	e := testutil.NewEnv(t)
	bobID, bobToken := e.RegisterUser(t, "Bob", "bob@example.com")
	_, aliceToken := e.RegisterUser(t, "Alice", "alice@example.com")
	projectID := e.CreateProject(t, aliceToken, "Board")

	w := e.Do(t, http.MethodPost, "/projects/"+projectID+"/member", aliceToken, gin.H{"email": "bob@example.com"})
	require.Equal(t, http.StatusCreated, w.Code)
	invToken := testutil.DecodeMap(t, w)["invToken"].(string)

	// only the invited user may accept
	w = e.Do(t, http.MethodGet, "/projects/"+projectID+"/member/"+invToken, aliceToken, nil)
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, common.ErrInvIncorrect, testutil.ErrorMessage(t, w))

	w = e.Do(t, http.MethodGet, "/projects/"+projectID+"/member/"+invToken, bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	members := testutil.DecodeMap(t, w)["memberIds"].([]interface{})
	assert.Contains(t, members, bobID)

	// the token is single use
	w = e.Do(t, http.MethodGet, "/projects/"+projectID+"/member/"+invToken, bobToken, nil)
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, common.ErrInvIncorrect, testutil.ErrorMessage(t, w))
}

func TestInviteRequiresOwnerAndVerifiedTarget(t *testing.T) {
	e := testutil.NewEnv(t)
	_, aliceToken := e.RegisterUser(t, "Alice", "alice@example.com")
	_, bobToken := e.RegisterUser(t, "Bob", "bob@example.com")
	projectID := e.CreateProject(t, aliceToken, "Board")

	w := e.Do(t, http.MethodPost, "/projects/"+projectID+"/member", bobToken, gin.H{"email": "alice@example.com"})
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, common.ErrProjectNotFoundOrNoAccess, testutil.ErrorMessage(t, w))

	// an unconfirmed user cannot be invited
	w = e.Do(t, http.MethodPost, "/auth/signup", "", gin.H{
		"name": "Carol", "email": "carol@example.com", "password": testutil.Password,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	w = e.Do(t, http.MethodPost, "/projects/"+projectID+"/member", aliceToken, gin.H{"email": "carol@example.com"})
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, common.ErrUserNotFound, testutil.ErrorMessage(t, w))
}

func TestOwnerInviteTransfersOwnership(t *testing.T) {
	e := testutil.NewEnv(t)
	aliceID, aliceToken := e.RegisterUser(t, "Alice", "alice@example.com")
	bobID, bobToken := e.RegisterUser(t, "Bob", "bob@example.com")
	projectID := e.CreateProject(t, aliceToken, "Board")
	e.AddMember(t, aliceToken, bobToken, projectID, "bob@example.com")

	w := e.Do(t, http.MethodPost, "/projects/"+projectID+"/owner", aliceToken, gin.H{"email": "bob@example.com"})
	require.Equal(t, http.StatusCreated, w.Code)
	invToken := testutil.DecodeMap(t, w)["invToken"].(string)

	w = e.Do(t, http.MethodGet, "/projects/"+projectID+"/owner/"+invToken, bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := testutil.DecodeMap(t, w)
	assert.Equal(t, bobID, body["ownerId"])
	members := body["memberIds"].([]interface{})
	assert.Contains(t, members, aliceID, "old owner becomes a member")
	assert.NotContains(t, members, bobID, "new owner leaves the member set")
}

func TestMemberTokenRejectedOnOwnerRoute(t *testing.T) {
	e := testutil.NewEnv(t)
	_, aliceToken := e.RegisterUser(t, "Alice", "alice@example.com")
	_, bobToken := e.RegisterUser(t, "Bob", "bob@example.com")
	projectID := e.CreateProject(t, aliceToken, "Board")

	w := e.Do(t, http.MethodPost, "/projects/"+projectID+"/member", aliceToken, gin.H{"email": "bob@example.com"})
	require.Equal(t, http.StatusCreated, w.Code)
	invToken := testutil.DecodeMap(t, w)["invToken"].(string)

	w = e.Do(t, http.MethodGet, "/projects/"+projectID+"/owner/"+invToken, bobToken, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, common.ErrInvTknInvalid, testutil.ErrorMessage(t, w))
}

func TestInviteTokenNotOnProjectRejected(t *testing.T) {
	e := testutil.NewEnv(t)
	bobID, bobToken := e.RegisterUser(t, "Bob", "bob@example.com")
	_, aliceToken := e.RegisterUser(t, "Alice", "alice@example.com")
	projectID := e.CreateProject(t, aliceToken, "Board")

	// a well-formed token the project never issued
	forged, err := services.CreateMemberInviteToken(e.Cfg, bobID)
	require.NoError(t, err)
	w := e.Do(t, http.MethodGet, "/projects/"+projectID+"/member/"+forged, bobToken, nil)
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, common.ErrInvIncorrect, testutil.ErrorMessage(t, w))
}

func TestRemoveMember(t *testing.T) {
	e := testutil.NewEnv(t)
	_, aliceToken := e.RegisterUser(t, "Alice", "alice@example.com")
	bobID, bobToken := e.RegisterUser(t, "Bob", "bob@example.com")
	projectID := e.CreateProject(t, aliceToken, "Board")
	e.AddMember(t, aliceToken, bobToken, projectID, "bob@example.com")

	// members cannot evict anyone, and the refusal is masked
	w := e.Do(t, http.MethodDelete, "/projects/"+projectID+"/member/"+bobID, bobToken, nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = e.Do(t, http.MethodDelete, "/projects/"+projectID+"/member/"+bobID, aliceToken, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = e.Do(t, http.MethodDelete, "/projects/"+projectID+"/member/"+bobID, aliceToken, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, common.ErrMemberNotFound, testutil.ErrorMessage(t, w))
}
