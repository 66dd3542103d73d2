package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"notemark/logger"
)

const RequestIDHeader = "X-Request-ID"

// RequestTracingMiddleware tags the request with an id, reusing one sent
// by the client, and makes it available to the logger.
func RequestTracingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" || len(requestID) > 64 {
			requestID = uuid.New().String()
		}

		c.Set("request_id", requestID)
		c.Header(RequestIDHeader, requestID)
		c.Request = c.Request.WithContext(logger.WithRequestID(c.Request.Context(), requestID))
		c.Next()
	}
}
