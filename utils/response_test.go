package utils

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notemark/apperr"
)

func newTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/notes", nil)
	return c, w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestList(t *testing.T) {
	c, w := newTestContext()
	List(c, []string{"a", "b"})

	assert.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(2), body["count"])
	assert.Equal(t, []any{"a", "b"}, body["data"])
}

func TestListEmpty(t *testing.T) {
	c, w := newTestContext()
	List[string](c, nil)

	body := decode(t, w)
	assert.Equal(t, float64(0), body["count"])
	assert.Equal(t, []any{}, body["data"])
}

func TestCreatedAndMessage(t *testing.T) {
	c, w := newTestContext()
	Created(c, map[string]string{"_id": "1"})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, map[string]any{"_id": "1"}, decode(t, w)["data"])

	c, w = newTestContext()
	Message(c, "Note deleted successfully")
	body := decode(t, w)
	assert.Equal(t, "Note deleted successfully", body["message"])
	assert.NotContains(t, body, "data")
}

func TestFail(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"bad request", apperr.BadRequest("User already exists with this email"), http.StatusBadRequest, "User already exists with this email"},
		{"unauthorized", apperr.Unauthorized("Invalid credentials"), http.StatusUnauthorized, "Invalid credentials"},
		{"not found", apperr.NotFound("Note not found"), http.StatusNotFound, "Note not found"},
		{"foreign", errors.New("connection reset"), http.StatusInternalServerError, "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext()
			Fail(c, tt.err)

			assert.Equal(t, tt.status, w.Code)
			assert.True(t, c.IsAborted())
			body := decode(t, w)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tt.message, body["message"])
			assert.NotContains(t, body, "stack")
		})
	}
}

func TestFailExposesStack(t *testing.T) {
	c, w := newTestContext()
	c.Set(ExposeStackKey, true)
	Fail(c, apperr.NotFound("Bookmark not found"))

	stack, ok := decode(t, w)["stack"].(string)
	require.True(t, ok)
	assert.Contains(t, stack, "goroutine")
}
