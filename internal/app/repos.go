package app

import (
	"gorm.io/gorm"

	"github.com/fotolog/fotolog-backend/internal/platform/logger"
	"github.com/fotolog/fotolog-backend/internal/repos"
)

type Repos struct {
	User       repos.UserRepo
	Photo      repos.PhotoRepo
	UserAction repos.UserActionRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	return Repos{
		User:       repos.NewUserRepo(db, log),
		Photo:      repos.NewPhotoRepo(db, log),
		UserAction: repos.NewUserActionRepo(db, log),
	}
}
