package middleware_test

import (
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

	"blogapi/middleware"
	"blogapi/models"
	"blogapi/utils"
)

func setupGuard(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "blog.db")), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Post{}))

	r := gin.New()
	r.GET("/probe", middleware.AuthRequired(db), func(ctx *gin.Context) {
		userID := ctx.MustGet(middleware.ContextUserIDKey).(uint)
		username := ctx.MustGet(middleware.ContextUsernameKey).(string)
		ctx.JSON(http.StatusOK, gin.H{"userId": userID, "username": username})
	})
	return r, db
}

func probe(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthRequiredRejectsMissingOrMalformedHeader(t *testing.T) {
	r, _ := setupGuard(t)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"blank header", "   "},
		{"wrong scheme", "Token abcdef"},
		{"scheme only", "Bearer"},
		{"no scheme", "abcdef"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := probe(r, tt.header)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestAuthRequiredRejectsUnknownToken(t *testing.T) {
	r, _ := setupGuard(t)

	w := probe(r, "Bearer "+utils.GenerateToken())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequiredResolvesValidToken(t *testing.T) {
	r, db := setupGuard(t)

	user := models.User{Username: "alice", PasswordHash: "x", Token: utils.GenerateToken()}
	require.NoError(t, db.Create(&user).Error)

	w := probe(r, "Bearer "+user.Token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"alice"`)
}

func TestAuthRequiredSchemeCaseAndWhitespace(t *testing.T) {
	r, db := setupGuard(t)

	user := models.User{Username: "bob", PasswordHash: "x", Token: utils.GenerateToken()}
	require.NoError(t, db.Create(&user).Error)

	assert.Equal(t, http.StatusOK, probe(r, "bearer "+user.Token).Code)
	assert.Equal(t, http.StatusOK, probe(r, "BEARER   "+user.Token).Code)
	assert.Equal(t, http.StatusOK, probe(r, "  Bearer  "+user.Token+"  ").Code)
}

func TestAuthRequiredOverwrittenTokenStopsResolving(t *testing.T) {
	r, db := setupGuard(t)

	old := utils.GenerateToken()
	user := models.User{Username: "carol", PasswordHash: "x", Token: old}
	require.NoError(t, db.Create(&user).Error)

	require.NoError(t, db.Model(&user).Update("token", utils.GenerateToken()).Error)

	assert.Equal(t, http.StatusUnauthorized, probe(r, "Bearer "+old).Code)
}
