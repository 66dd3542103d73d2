package server

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"notemark/apperr"
	"notemark/config"
	"notemark/handler"
	"notemark/middleware"
	"notemark/usecase"
	"notemark/utils"
)

type Services struct {
	Auth      *usecase.AuthService
	Notes     *usecase.NotesService
	Bookmarks *usecase.BookmarksService
	Health    *handler.HealthHandler
}

func NewRouter(cfg config.Config, svc Services) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	utils.InitValidator()

	router := gin.New()
	router.Use(
		middleware.RequestTracingMiddleware(),
		middleware.RequestLogger(),
		middleware.ErrorStacks(!cfg.IsProduction()),
		middleware.RecoveryMiddleware(),
		middleware.MetricsMiddleware(),
		middleware.CORSMiddleware(cfg.HTTP.AllowedOrigins),
		middleware.RequestSizeLimiter(middleware.DefaultMaxRequestSize),
	)

	authHandler := handler.NewAuthHandler(svc.Auth)
	notesHandler := handler.NewNotesHandler(svc.Notes)
	bookmarksHandler := handler.NewBookmarksHandler(svc.Bookmarks)

	requireAuth := middleware.RequireAuth(svc.Auth)

	router.GET("/", middleware.OptionalAuth(svc.Auth), svc.Health.Index)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.NoRoute(func(c *gin.Context) {
		utils.Fail(c, apperr.NotFound("Route not found"))
	})

	api := router.Group("/api")
	api.Use(middleware.CacheControl("no-store"))
	{
		api.GET("/health", svc.Health.Health)

		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.GET("/me", requireAuth, authHandler.Me)
		}

		notes := api.Group("/notes", requireAuth)
		{
			notes.GET("", notesHandler.List)
			notes.POST("", notesHandler.Create)
			notes.GET("/:id", notesHandler.Get)
			notes.PUT("/:id", notesHandler.Update)
			notes.DELETE("/:id", notesHandler.Delete)
		}

		bookmarks := api.Group("/bookmarks", requireAuth)
		{
			bookmarks.GET("", bookmarksHandler.List)
			bookmarks.POST("", bookmarksHandler.Create)
			bookmarks.GET("/:id", bookmarksHandler.Get)
			bookmarks.PUT("/:id", bookmarksHandler.Update)
			bookmarks.DELETE("/:id", bookmarksHandler.Delete)
		}
	}

	return router
}
