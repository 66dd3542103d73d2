package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	ua "github.com/mileusna/useragent"

	"notemark/logger"
)

// RequestLogger logs one line per request once the response is written.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		parsed := ua.Parse(c.Request.UserAgent())

		attrs := []slog.Attr{
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", status),
			slog.Duration("duration", time.Since(start)),
			slog.String("client_ip", c.ClientIP()),
		}
		if parsed.Name != "" {
			attrs = append(attrs, slog.String("browser", parsed.Name))
		}
		if parsed.OS != "" {
			attrs = append(attrs, slog.String("os", parsed.OS))
		}
		attrs = append(attrs, slog.String("device", deviceType(parsed)))

		ctx := c.Request.Context()
		switch {
		case status >= 500:
			logger.Error(ctx, "request", attrs...)
		case status >= 400:
			logger.Warn(ctx, "request", attrs...)
		default:
			logger.Info(ctx, "request", attrs...)
		}
	}
}

func deviceType(parsed ua.UserAgent) string {
	switch {
	case parsed.Bot:
		return "bot"
	case parsed.Mobile:
		return "mobile"
	case parsed.Tablet:
		return "tablet"
	default:
		return "desktop"
	}
}
