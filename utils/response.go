package utils

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"notemark/apperr"
	"notemark/logger"
)

// Response is the envelope every endpoint answers with.
type Response struct {
	Success bool   `json:"success"`
	Count   *int   `json:"count,omitempty"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Stack   string `json:"stack,omitempty"`
}

func Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, &Response{
		Success: true,
		Data:    data,
	})
}

func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, &Response{
		Success: true,
		Data:    data,
	})
}

// List responds with the items and their count.
func List[T any](c *gin.Context, items []T) {
	if items == nil {
		items = []T{}
	}
	count := len(items)
	c.JSON(http.StatusOK, &Response{
		Success: true,
		Count:   &count,
		Data:    items,
	})
}

// Message responds 200 with a message and no data.
func Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, &Response{
		Success: true,
		Message: message,
	})
}

// ExposeStackKey marks a request whose failure envelope may carry the
// stack captured with the error.
const ExposeStackKey = "expose_stack"

// Fail renders err with the status of its kind. Unknown errors are
// reported as internal without leaking their text.
func Fail(c *gin.Context, err error) {
	e := apperr.From(err)
	status := e.Kind.HTTPStatus()

	TrackError(e.Kind.String())
	if status >= http.StatusInternalServerError {
		logger.Error(c.Request.Context(), "request failed",
			slog.String("path", c.Request.URL.Path), logger.Err(err))
	}

	resp := &Response{
		Success: false,
		Message: e.Message,
	}
	if c.GetBool(ExposeStackKey) {
		resp.Stack = string(e.Stack)
	}

	c.AbortWithStatusJSON(status, resp)
}
