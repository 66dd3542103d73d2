package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"notemark/middleware"
	"notemark/utils"
)

// Pinger reports whether an optional backing service is reachable.
type Pinger interface {
	IsConnected(ctx context.Context) bool
}

type HealthHandler struct {
	started time.Time
	driver  string
	cache   Pinger
}

// NewHealthHandler builds the health and index endpoints. cache may be nil
// when no title cache is configured.
func NewHealthHandler(driver string, cache Pinger) *HealthHandler {
	return &HealthHandler{
		started: time.Now(),
		driver:  driver,
		cache:   cache,
	}
}

type HealthResponse struct {
	Success   bool              `json:"success"`
	Message   string            `json:"message"`
	Timestamp time.Time         `json:"timestamp"`
	Uptime    string            `json:"uptime"`
	Store     string            `json:"store"`
	Cache     string            `json:"cache"`
	System    utils.SystemStats `json:"system"`
}

func (h *HealthHandler) Health(c *gin.Context) {
	ctx := c.Request.Context()

	cache := "disabled"
	if h.cache != nil {
		cache = "down"
		if h.cache.IsConnected(ctx) {
			cache = "up"
		}
	}

	c.JSON(http.StatusOK, HealthResponse{
		Success:   true,
		Message:   "API is running",
		Timestamp: time.Now().UTC(),
		Uptime:    time.Since(h.started).Round(time.Second).String(),
		Store:     h.driver,
		Cache:     cache,
		System:    utils.GetSystemStats(ctx),
	})
}

// Index describes the API. Authenticated callers are greeted by name.
func (h *HealthHandler) Index(c *gin.Context) {
	body := gin.H{
		"success": true,
		"message": "Notes & Bookmarks API",
		"version": "1.0.0",
		"docs": gin.H{
			"notes":     "/api/notes",
			"bookmarks": "/api/bookmarks",
			"auth":      "/api/auth",
			"health":    "/api/health",
		},
	}
	if identity, ok := middleware.CurrentUser(c); ok {
		body["user"] = identity
	}
	c.JSON(http.StatusOK, body)
}
