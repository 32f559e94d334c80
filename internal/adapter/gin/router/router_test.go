package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"

	dbmysql "user-rest-service/internal/adapter/db/mysql"
	"user-rest-service/internal/adapter/gin/handler"
	"user-rest-service/internal/usecase/user"
)

// setupAPI wires the real stack (repository, usecase, handler, router) over an
// in-memory database.
func setupAPI(t *testing.T) *gin.Engine {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, dbmysql.Migrate(db))

	log := zaptest.NewLogger(t)
	repo := dbmysql.NewUserRepo(db, log)
	uc := user.New(repo, log)
	h := handler.NewUserHandler(uc, log)

	return SetupRouter(h, log)
}

func doJSON(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	r := setupAPI(t)

	w := doJSON(r, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUserLifecycle(t *testing.T) {
	r := setupAPI(t)

	// Empty list is an array, not an error.
	w := doJSON(r, http.MethodGet, "/users", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())

	// Create.
	w = doJSON(r, http.MethodPost, "/users", gin.H{"name": "Ana", "email": "ana@example.com"})
	require.Equal(t, http.StatusOK, w.Code)

	var created handler.CreateUserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, int64(1), created.ID)
	assert.NotEmpty(t, created.Message)

	// Get by id returns the created row.
	w = doJSON(r, http.MethodGet, "/users/1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got handler.UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, int64(1), got.ID)
	assert.Equal(t, "Ana", got.Name)
	assert.Equal(t, "ana@example.com", got.Email)

	// Duplicate email conflicts and does not add a row.
	w = doJSON(r, http.MethodPost, "/users", gin.H{"name": "Ana Clone", "email": "ana@example.com"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "email already registered")

	w = doJSON(r, http.MethodGet, "/users", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var users []handler.UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &users))
	assert.Len(t, users, 1)

	// Update persists new values.
	w = doJSON(r, http.MethodPut, "/users/1", gin.H{"name": "Ana B", "email": "anab@example.com"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, "/users/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Ana B", got.Name)
	assert.Equal(t, "anab@example.com", got.Email)

	// Delete removes the row; repeated operations report not found.
	w = doJSON(r, http.MethodDelete, "/users/1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, "/users/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(r, http.MethodDelete, "/users/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(r, http.MethodGet, "/users", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestCreateValidation(t *testing.T) {
	r := setupAPI(t)

	// Missing fields are rejected before any insert happens.
	w := doJSON(r, http.MethodPost, "/users", gin.H{"name": "Ana"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPost, "/users", gin.H{"email": "ana@example.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPost, "/users", gin.H{"name": "", "email": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodGet, "/users", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestUpdateNonExistent(t *testing.T) {
	r := setupAPI(t)

	w := doJSON(r, http.MethodPut, "/users/99", gin.H{"name": "Ghost", "email": "ghost@example.com"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRequestIDHeader(t *testing.T) {
	r := setupAPI(t)

	w := doJSON(r, http.MethodGet, "/health", nil)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
