package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/souramoo/calorie-counter-vibe/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(t *testing.T) (*gin.Engine, *utils.TokenManager) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	tokens, err := utils.NewTokenManager("secret", time.Hour)
	require.NoError(t, err)

	r := gin.New()
	r.Use(RequestID())
	r.GET("/me", AuthMiddleware(tokens), func(c *gin.Context) {
		uid, _ := UserID(c)
		c.JSON(http.StatusOK, gin.H{"id": uid, "email": c.GetString(ContextEmail)})
	})
	return r, tokens
}

func TestAuthMiddlewareBearer(t *testing.T) {
	r, tokens := newRouter(t)
	token, err := tokens.Generate(9, "a@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":9,"email":"a@example.com"}`, w.Body.String())
}

func TestAuthMiddlewareQueryTokenOnlyForWebsocket(t *testing.T) {
	r, tokens := newRouter(t)
	token, err := tokens.Generate(9, "a@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me?token="+token, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/me?token="+token, nil)
	req.Header.Set("Connection", "upgrade")
	req.Header.Set("Upgrade", "websocket")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequestIDPropagates(t *testing.T) {
	r, _ := newRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Len(t, w.Header().Get(RequestIDHeader), 36)
}
