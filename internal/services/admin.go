package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	errs "github.com/fotolog/fotolog-backend/internal/pkg/errors"
	"github.com/fotolog/fotolog-backend/internal/platform/logger"
	"github.com/fotolog/fotolog-backend/internal/repos"
	"github.com/fotolog/fotolog-backend/internal/types"
)

// AdminService is the back-office mutation surface. It operates directly on
// the row-store and the ingestion pipeline's storage stages; it never
// resolves identities and never writes audit events.
type AdminService interface {
	ListUsers(ctx context.Context) ([]*types.User, error)
	UpdateUser(ctx context.Context, id uuid.UUID, email string, displayName *string) error
	RotateCredential(ctx context.Context, id uuid.UUID, newCredential string) error
	DeleteUser(ctx context.Context, id uuid.UUID) error

	ListPhotos(ctx context.Context) ([]*types.Photo, error)
	UploadPhotoFor(ctx context.Context, ownerID uuid.UUID, in IngestInput) (*types.Photo, error)
	DeletePhoto(ctx context.Context, id uuid.UUID) error

	ListActions(ctx context.Context) ([]*types.UserAction, error)
	DeleteAction(ctx context.Context, id uuid.UUID) error
}

type adminService struct {
	log        *logger.Logger
	userRepo   repos.UserRepo
	actionRepo repos.UserActionRepo
	photos     PhotoService
	ingest     IngestService
}

func NewAdminService(
	baseLog *logger.Logger,
	userRepo repos.UserRepo,
	actionRepo repos.UserActionRepo,
	photos PhotoService,
	ingest IngestService,
) AdminService {
	serviceLog := baseLog.With("service", "AdminService")
	return &adminService{
		log:        serviceLog,
		userRepo:   userRepo,
		actionRepo: actionRepo,
		photos:     photos,
		ingest:     ingest,
	}
}

func (s *adminService) ListUsers(ctx context.Context) ([]*types.User, error) {
	users, err := s.userRepo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *adminService) UpdateUser(ctx context.Context, id uuid.UUID, email string, displayName *string) error {
	fields := map[string]interface{}{}
	if email != "" {
		fields["email"] = email
	}
	if displayName != nil {
		fields["display_name"] = *displayName
	}
	if len(fields) == 0 {
		return nil
	}

	rows, err := s.userRepo.UpdateFields(ctx, nil, id, fields)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if rows == 0 {
		return errs.ErrNotFound
	}

	s.log.Info("user updated by admin", "user_id", id)
	return nil
}

// RotateCredential rewrites only the row-store credential copy. The
// identity provider keeps verifying the old secret, so the user's existing
// login keeps working until the provider-side credential changes too.
func (s *adminService) RotateCredential(ctx context.Context, id uuid.UUID, newCredential string) error {
	rows, err := s.userRepo.UpdateFields(ctx, nil, id, map[string]interface{}{
		"credential": newCredential,
	})
	if err != nil {
		return fmt.Errorf("failed to rotate credential: %w", err)
	}
	if rows == 0 {
		return errs.ErrNotFound
	}

	s.log.Info("row-store credential rotated", "user_id", id)
	return nil
}

// DeleteUser removes the user row only. Photos, audit records, and the
// provider-side identity stay behind.
func (s *adminService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	rows, err := s.userRepo.DeleteByID(ctx, nil, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if rows == 0 {
		return errs.ErrNotFound
	}

	s.log.Info("user deleted by admin", "user_id", id)
	return nil
}

func (s *adminService) ListPhotos(ctx context.Context) ([]*types.Photo, error) {
	return s.photos.ListFeed(ctx)
}

func (s *adminService) UploadPhotoFor(ctx context.Context, ownerID uuid.UUID, in IngestInput) (*types.Photo, error) {
	return s.ingest.RunFor(ctx, ownerID, in)
}

func (s *adminService) DeletePhoto(ctx context.Context, id uuid.UUID) error {
	return s.photos.Delete(ctx, id)
}

func (s *adminService) ListActions(ctx context.Context) ([]*types.UserAction, error) {
	actions, err := s.actionRepo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list user actions: %w", err)
	}
	return actions, nil
}

func (s *adminService) DeleteAction(ctx context.Context, id uuid.UUID) error {
	rows, err := s.actionRepo.DeleteByID(ctx, nil, id)
	if err != nil {
		return fmt.Errorf("failed to delete user action: %w", err)
	}
	if rows == 0 {
		return errs.ErrNotFound
	}
	return nil
}
