package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	errs "github.com/fotolog/fotolog-backend/internal/pkg/errors"
	"github.com/fotolog/fotolog-backend/internal/platform/logger"
	"github.com/fotolog/fotolog-backend/internal/repos"
	"github.com/fotolog/fotolog-backend/internal/types"
)

// RegistrarService writes the row-store record for an already stored photo
// object. It never touches the bucket; a failed insert leaves the object in
// place and the caller decides how to report it.
type RegistrarService interface {
	RegisterPhoto(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID, bucketKey, url string, caption *string) (*types.Photo, error)
}

type registrarService struct {
	log       *logger.Logger
	photoRepo repos.PhotoRepo
}

func NewRegistrarService(baseLog *logger.Logger, photoRepo repos.PhotoRepo) RegistrarService {
	serviceLog := baseLog.With("service", "RegistrarService")
	return &registrarService{log: serviceLog, photoRepo: photoRepo}
}

func (rs *registrarService) RegisterPhoto(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID, bucketKey, url string, caption *string) (*types.Photo, error) {
	photo := &types.Photo{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		BucketKey: bucketKey,
		URL:       url,
		Caption:   caption,
		CreatedAt: time.Now(),
	}

	if _, err := rs.photoRepo.Create(ctx, tx, []*types.Photo{photo}); err != nil {
		rs.log.Error("photo row insert failed, stored object is orphaned",
			"key", bucketKey, "owner_id", ownerID, "error", err)
		return nil, fmt.Errorf("%w: %w", errs.ErrRegistrationFailed, err)
	}

	rs.log.Info("photo registered", "photo_id", photo.ID, "owner_id", ownerID)
	return photo, nil
}
