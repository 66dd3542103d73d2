package middleware

import (
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"notemark/apperr"
	"notemark/logger"
	"notemark/utils"
)

// RecoveryMiddleware turns a panic into an internal error response.
func RecoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error(c.Request.Context(), "panic recovered",
					slog.Any("panic", r),
					slog.String("stack", string(debug.Stack())))
				utils.Fail(c, apperr.Internal("Internal Server Error", fmt.Errorf("panic: %v", r)))
			}
		}()
		c.Next()
	}
}

// ErrorStacks controls whether failure responses include the captured
// stack. It is enabled outside production.
func ErrorStacks(expose bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(utils.ExposeStackKey, expose)
		c.Next()
	}
}
