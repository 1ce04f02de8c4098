package db

import (
	"gorm.io/gorm"

	"github.com/fotolog/fotolog-backend/internal/auth"
	"github.com/fotolog/fotolog-backend/internal/types"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		// Provider-owned credential store. Kept apart from the app's "user"
		// table; login never consults user.credential.
		&auth.IdentityRecord{},

		&types.User{},
		&types.Photo{},
		&types.UserAction{},
	)
}

func (s *PostgresService) AutoMigrateAll() error {
	return AutoMigrateAll(s.db)
}
