package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	errs "github.com/fotolog/fotolog-backend/internal/pkg/errors"
	"github.com/fotolog/fotolog-backend/internal/platform/gcs"
	"github.com/fotolog/fotolog-backend/internal/platform/logger"
	"github.com/fotolog/fotolog-backend/internal/repos"
	"github.com/fotolog/fotolog-backend/internal/types"
)

// PhotoService reads and removes registered photos. Deletion removes the
// bucket object first and the row second; a bucket failure is logged and
// the row delete proceeds, trading a possible dangling object for a feed
// that stops showing the photo.
type PhotoService interface {
	ListFeed(ctx context.Context) ([]*types.Photo, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*types.Photo, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteOwned(ctx context.Context, ownerID, id uuid.UUID) error
}

type photoService struct {
	log       *logger.Logger
	photoRepo repos.PhotoRepo
	bucket    gcs.BucketService
}

func NewPhotoService(baseLog *logger.Logger, photoRepo repos.PhotoRepo, bucket gcs.BucketService) PhotoService {
	serviceLog := baseLog.With("service", "PhotoService")
	return &photoService{log: serviceLog, photoRepo: photoRepo, bucket: bucket}
}

func (ps *photoService) ListFeed(ctx context.Context) ([]*types.Photo, error) {
	photos, err := ps.photoRepo.ListAll(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list photos: %w", err)
	}
	return photos, nil
}

func (ps *photoService) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*types.Photo, error) {
	photos, err := ps.photoRepo.ListByOwnerID(ctx, nil, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list photos for owner: %w", err)
	}
	return photos, nil
}

func (ps *photoService) Delete(ctx context.Context, id uuid.UUID) error {
	photo, err := ps.photoRepo.GetByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.ErrNotFound
		}
		return fmt.Errorf("failed to load photo: %w", err)
	}
	return ps.remove(ctx, photo)
}

func (ps *photoService) DeleteOwned(ctx context.Context, ownerID, id uuid.UUID) error {
	photo, err := ps.photoRepo.GetByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.ErrNotFound
		}
		return fmt.Errorf("failed to load photo: %w", err)
	}
	if photo.OwnerID != ownerID {
		return errs.ErrPermissionDenied
	}
	return ps.remove(ctx, photo)
}

func (ps *photoService) remove(ctx context.Context, photo *types.Photo) error {
	if err := ps.bucket.DeleteFile(ctx, photo.BucketKey); err != nil {
		ps.log.Warn("bucket object delete failed, removing row anyway",
			"photo_id", photo.ID, "key", photo.BucketKey, "error", err)
	}

	rows, err := ps.photoRepo.DeleteByID(ctx, nil, photo.ID)
	if err != nil {
		return fmt.Errorf("failed to delete photo record: %w", err)
	}
	if rows == 0 {
		return errs.ErrNotFound
	}

	ps.log.Info("photo deleted", "photo_id", photo.ID, "owner_id", photo.OwnerID)
	return nil
}
