package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fotolog/fotolog-backend/internal/auth"
	errs "github.com/fotolog/fotolog-backend/internal/pkg/errors"
	"github.com/fotolog/fotolog-backend/internal/platform/logger"
	"github.com/fotolog/fotolog-backend/internal/repos"
	"github.com/fotolog/fotolog-backend/internal/types"
)

// UserService is the self-service profile surface.
type UserService interface {
	GetByID(ctx context.Context, id uuid.UUID) (*types.User, error)
	UpdateDisplayName(ctx context.Context, id uuid.UUID, displayName string) error
	// ChangeOwnCredential updates the credential the identity provider
	// actually verifies, unlike the admin rotation which only rewrites the
	// row-store copy.
	ChangeOwnCredential(ctx context.Context, identityID uuid.UUID, newCredential string) error
}

type userService struct {
	log      *logger.Logger
	userRepo repos.UserRepo
	provider auth.Provider
}

func NewUserService(baseLog *logger.Logger, userRepo repos.UserRepo, provider auth.Provider) UserService {
	serviceLog := baseLog.With("service", "UserService")
	return &userService{log: serviceLog, userRepo: userRepo, provider: provider}
}

func (us *userService) GetByID(ctx context.Context, id uuid.UUID) (*types.User, error) {
	user, err := us.userRepo.GetByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return user, nil
}

func (us *userService) UpdateDisplayName(ctx context.Context, id uuid.UUID, displayName string) error {
	rows, err := us.userRepo.UpdateFields(ctx, nil, id, map[string]interface{}{
		"display_name": displayName,
	})
	if err != nil {
		return fmt.Errorf("failed to update display name: %w", err)
	}
	if rows == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (us *userService) ChangeOwnCredential(ctx context.Context, identityID uuid.UUID, newCredential string) error {
	if err := us.provider.UpdateCredential(ctx, identityID, newCredential); err != nil {
		return err
	}

	// Keep the row-store copy in step with the provider for self-service
	// changes. A zero row count just means no row-store record yet.
	if _, err := us.userRepo.UpdateFields(ctx, nil, identityID, map[string]interface{}{
		"credential": newCredential,
	}); err != nil {
		us.log.Warn("row-store credential copy not updated", "user_id", identityID, "error", err)
	}

	us.log.Info("credential changed", "user_id", identityID)
	return nil
}
