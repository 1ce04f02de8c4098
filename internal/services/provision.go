package services

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/fotolog/fotolog-backend/internal/auth"
	"github.com/fotolog/fotolog-backend/internal/platform/logger"
	"github.com/fotolog/fotolog-backend/internal/repos"
	"github.com/fotolog/fotolog-backend/internal/types"
)

// ProvisionService lazily materializes a row-store user for an
// authenticated identity. Safe to call any number of times for the same
// identity; an existing row is left untouched.
type ProvisionService interface {
	EnsureUserRecord(ctx context.Context, tx *gorm.DB, identity *auth.Identity) error
}

type provisionService struct {
	log      *logger.Logger
	userRepo repos.UserRepo
}

func NewProvisionService(baseLog *logger.Logger, userRepo repos.UserRepo) ProvisionService {
	serviceLog := baseLog.With("service", "ProvisionService")
	return &provisionService{log: serviceLog, userRepo: userRepo}
}

func (ps *provisionService) EnsureUserRecord(ctx context.Context, tx *gorm.DB, identity *auth.Identity) error {
	// Bootstrap rows carry only what the identity provider knows: no
	// display name, no row-store credential.
	record := &types.User{
		ID:        identity.ID,
		Email:     identity.Email,
		CreatedAt: time.Now(),
	}

	created, err := ps.userRepo.CreateIfAbsent(ctx, tx, record)
	if err != nil {
		return fmt.Errorf("failed to provision user record: %w", err)
	}
	if created {
		ps.log.Info("provisioned user record", "user_id", identity.ID)
	} else {
		ps.log.Debug("user record already present", "user_id", identity.ID)
	}
	return nil
}
