package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"notemark/utils"
)

const DefaultMaxRequestSize = 1 << 20

// RequestSizeLimiter caps request bodies at maxSize bytes.
func RequestSizeLimiter(maxSize int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxSize {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, &utils.Response{
				Success: false,
				Message: "Request body too large",
			})
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxSize)
		c.Next()
	}
}
