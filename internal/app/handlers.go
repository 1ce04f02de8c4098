package app

import (
	"github.com/fotolog/fotolog-backend/internal/http/handlers"
	"github.com/fotolog/fotolog-backend/internal/http/middleware"
	"github.com/fotolog/fotolog-backend/internal/platform/logger"
)

type Handlers struct {
	Auth  *handlers.AuthHandler
	Photo *handlers.PhotoHandler
	User  *handlers.UserHandler
	Admin *handlers.AdminHandler
}

func wireHandlers(cfg Config, serviceset Services) Handlers {
	return Handlers{
		Auth:  handlers.NewAuthHandler(serviceset.Account),
		Photo: handlers.NewPhotoHandler(serviceset.Ingest, serviceset.Photo, cfg.MaxUploadBytes),
		User:  handlers.NewUserHandler(serviceset.User),
		Admin: handlers.NewAdminHandler(serviceset.Admin, cfg.MaxUploadBytes),
	}
}

func wireMiddleware(log *logger.Logger, serviceset Services) *middleware.AuthMiddleware {
	return middleware.NewAuthMiddleware(log, serviceset.Provider)
}
