package routes_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"blogapi/models"
	"blogapi/routes"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "blog.db")), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Post{}))
	return routes.SetupRouter(db)
}

func do(t *testing.T, r http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var b []byte
	if body != nil {
		var err error
		b, err = json.Marshal(body)
		require.NoError(t, err)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func tokenOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var reply struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reply))
	require.NotEmpty(t, reply.Token)
	return reply.Token
}

func TestHealth(t *testing.T) {
	r := setupRouter(t)
	w := do(t, r, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUnknownRoute(t *testing.T) {
	r := setupRouter(t)
	w := do(t, r, http.MethodGet, "/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// Full lifecycle: register, post, public read, failed and successful login
// with token rotation, then a mutation with the stale token.
func TestEndToEndScenario(t *testing.T) {
	r := setupRouter(t)

	// register alice -> 201 + t1
	w := do(t, r, http.MethodPost, "/register", "", gin.H{"username": "alice", "password": "pw1"})
	require.Equal(t, http.StatusCreated, w.Code)
	t1 := tokenOf(t, w)

	// create a post with t1 -> 201 + id 1
	w = do(t, r, http.MethodPost, "/posts", t1, gin.H{"title": "Hi", "content": "World"})
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		PostID uint `json:"postId"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.EqualValues(t, 1, created.PostID)

	// public read, no auth header -> 200 with the title
	w = do(t, r, http.MethodGet, "/posts/1", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"title":"Hi"`)

	// wrong password -> 401
	w = do(t, r, http.MethodPost, "/login", "", gin.H{"username": "alice", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// correct login -> 200 + t2, rotated
	w = do(t, r, http.MethodPost, "/login", "", gin.H{"username": "alice", "password": "pw1"})
	require.Equal(t, http.StatusOK, w.Code)
	t2 := tokenOf(t, w)
	assert.NotEqual(t, t1, t2)

	// the stale token no longer authenticates: 401, not 403
	w = do(t, r, http.MethodDelete, "/posts/1", t1, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// the fresh token still owns the post
	w = do(t, r, http.MethodDelete, "/posts/1", t2, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
