// Package testutil carries the helpers shared by the controller test
// suites: an in-memory environment wrapping the full router and the
// signup/confirm/signin dance that yields an access token.
package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"taskboard/config"
	"taskboard/connection"
	"taskboard/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const Password = "password123"

func Config() *config.Config {
	return &config.Config{
		Port: "3000",
		Env:  "test",

		ConfirmationSecret: "conf-secret",
		AccessSecret:       "access-secret",
		RefreshSecret:      "refresh-secret",
		MemberInviteSecret: "member-secret",
		OwnerInviteSecret:  "owner-secret",

		ConfirmationTTL: time.Hour,
		AccessTTL:       time.Hour,
		RefreshTTL:      time.Hour,
		InviteTTL:       time.Hour,

		CookieName: "jwt",

		MinPasswordLength: 8,
		MaxPasswordLength: 25,

		MaxColumnsPerProject: 12,
		MaxTasksPerProject:   100,
	}
}

type Env struct {
	Router *gin.Engine
	Store  *store.MemStore
	Cfg    *config.Config
}

func NewEnv(t *testing.T) *Env {
	t.Helper()
	cfg := Config()
	db := store.NewMemStore()
	return &Env{Router: connection.NewRouter(db, cfg), Store: db, Cfg: cfg}
}

// Do performs one request against the router. An empty token leaves the
// Authorization header off.
func (e *Env) Do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.Router.ServeHTTP(w, req)
	return w
}

func DecodeMap(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func DecodeList(t *testing.T, w *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()
	var body []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// ErrorMessage pulls the "error" field out of a failure response.
func ErrorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	msg, ok := DecodeMap(t, w)["error"].(string)
	require.True(t, ok, "response has no error field: %s", w.Body.String())
	return msg
}

// RegisterUser runs signup, confirmation and signin for a fresh user and
// returns the user id and a live access token.
func (e *Env) RegisterUser(t *testing.T, name, email string) (string, string) {
	t.Helper()
	w := e.Do(t, http.MethodPost, "/auth/signup", "", gin.H{
		"name": name, "email": email, "password": Password,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	confToken, ok := DecodeMap(t, w)["confToken"].(string)
	require.True(t, ok)

	w = e.Do(t, http.MethodGet, "/auth/confirmation/"+confToken, "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = e.Do(t, http.MethodPost, "/auth/signin", "", gin.H{
		"email": email, "password": Password,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := DecodeMap(t, w)
	user, ok := body["user"].(map[string]interface{})
	require.True(t, ok)
	return user["id"].(string), body["token"].(string)
}

// CreateProject returns the new project's id. The three default columns
// come with it.
func (e *Env) CreateProject(t *testing.T, token, title string) string {
	t.Helper()
	w := e.Do(t, http.MethodPost, "/projects", token, gin.H{"title": title})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return DecodeMap(t, w)["id"].(string)
}

// AddMember invites the user by email and accepts the invitation with the
// member's own token.
func (e *Env) AddMember(t *testing.T, ownerToken, memberToken, projectID, memberEmail string) {
	t.Helper()
	w := e.Do(t, http.MethodPost, "/projects/"+projectID+"/member", ownerToken, gin.H{"email": memberEmail})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	invToken := DecodeMap(t, w)["invToken"].(string)
	w = e.Do(t, http.MethodGet, "/projects/"+projectID+"/member/"+invToken, memberToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

// CreateColumn returns the new column's id.
func (e *Env) CreateColumn(t *testing.T, token, projectID, title string, order int) string {
	t.Helper()
	w := e.Do(t, http.MethodPost, "/columns", token, gin.H{
		"title": title, "projectId": projectID, "order": order,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return DecodeMap(t, w)["id"].(string)
}

// CreateTask returns the new task's id.
func (e *Env) CreateTask(t *testing.T, token, columnID, title string, order int) string {
	t.Helper()
	w := e.Do(t, http.MethodPost, "/tasks", token, gin.H{
		"title": title, "columnId": columnID, "order": order,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return DecodeMap(t, w)["id"].(string)
}
