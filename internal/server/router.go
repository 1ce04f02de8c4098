package server

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/fotolog/fotolog-backend/internal/http/handlers"
	"github.com/fotolog/fotolog-backend/internal/http/middleware"
)

type RouterConfig struct {
	AuthHandler    *handlers.AuthHandler
	PhotoHandler   *handlers.PhotoHandler
	UserHandler    *handlers.UserHandler
	AdminHandler   *handlers.AdminHandler
	AuthMiddleware *middleware.AuthMiddleware
	TracingEnabled bool
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORS())
	if cfg.TracingEnabled {
		router.Use(otelgin.Middleware("fotolog-backend"))
	}

	// Public
	router.GET("/healthcheck", handlers.HealthCheck)
	api := router.Group("/api")
	{
		api.POST("/register", cfg.AuthHandler.Register)
		api.POST("/login", cfg.AuthHandler.Login)
	}

	// Protected
	protected := router.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	// Photos
	protected.GET("/feed", cfg.PhotoHandler.ListFeed)
	protected.POST("/photos", cfg.PhotoHandler.Upload)
	protected.DELETE("/photos/:id", cfg.PhotoHandler.DeleteMine)
	// Profile
	protected.GET("/me", cfg.UserHandler.GetMe)
	protected.PATCH("/me", cfg.UserHandler.UpdateDisplayName)
	protected.POST("/me/password", cfg.UserHandler.ChangePassword)
	protected.GET("/me/photos", cfg.PhotoHandler.ListMine)

	// Admin surface. Gated by authentication only; every signed-in
	// identity can reach it.
	admin := protected.Group("/admin")
	{
		admin.GET("/users", cfg.AdminHandler.ListUsers)
		admin.PATCH("/users/:id", cfg.AdminHandler.UpdateUser)
		admin.POST("/users/:id/password", cfg.AdminHandler.RotateCredential)
		admin.DELETE("/users/:id", cfg.AdminHandler.DeleteUser)
		admin.POST("/users/:id/photos", cfg.AdminHandler.UploadPhotoFor)
		admin.GET("/photos", cfg.AdminHandler.ListPhotos)
		admin.DELETE("/photos/:id", cfg.AdminHandler.DeletePhoto)
		admin.GET("/actions", cfg.AdminHandler.ListActions)
		admin.DELETE("/actions/:id", cfg.AdminHandler.DeleteAction)
	}

	return router
}
