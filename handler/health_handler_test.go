package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notemark/apperr"
	"notemark/middleware"
	"notemark/model"
)

type stubAuthenticator struct{}

func (stubAuthenticator) Authenticate(_ context.Context, token string) (model.Identity, error) {
	if token != "valid" {
		return model.Identity{}, apperr.Unauthorized("Not authorized - invalid or expired token")
	}
	return model.Identity{ID: "u1", Name: "Ada", Email: "ada@example.com"}, nil
}

type stubPinger bool

func (p stubPinger) IsConnected(context.Context) bool { return bool(p) }

func serve(t *testing.T, h gin.HandlerFunc, setup gin.HandlerFunc, authHeader string) map[string]any {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/", setup, h)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func noop(c *gin.Context) { c.Next() }

func TestHealth(t *testing.T) {
	tests := []struct {
		name  string
		cache Pinger
		want  string
	}{
		{"no cache", nil, "disabled"},
		{"cache up", stubPinger(true), "up"},
		{"cache down", stubPinger(false), "down"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler("memory", tt.cache)
			body := serve(t, h.Health, noop, "")

			assert.Equal(t, true, body["success"])
			assert.Equal(t, "memory", body["store"])
			assert.Equal(t, tt.want, body["cache"])
			assert.Contains(t, body, "system")
			assert.NotEmpty(t, body["uptime"])
		})
	}
}

func TestIndex(t *testing.T) {
	h := NewHealthHandler("memory", nil)

	optional := middleware.OptionalAuth(stubAuthenticator{})

	body := serve(t, h.Index, optional, "")
	assert.Equal(t, "Notes & Bookmarks API", body["message"])
	assert.NotContains(t, body, "user")

	body = serve(t, h.Index, optional, "Bearer expired")
	assert.NotContains(t, body, "user")

	body = serve(t, h.Index, optional, "Bearer valid")
	assert.Equal(t, map[string]any{"_id": "u1", "name": "Ada", "email": "ada@example.com"}, body["user"])
}
