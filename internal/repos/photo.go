package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fotolog/fotolog-backend/internal/platform/logger"
	"github.com/fotolog/fotolog-backend/internal/types"
)

type PhotoRepo interface {
	Create(ctx context.Context, tx *gorm.DB, photos []*types.Photo) ([]*types.Photo, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Photo, error)
	ListAll(ctx context.Context, tx *gorm.DB) ([]*types.Photo, error)
	ListByOwnerID(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) ([]*types.Photo, error)
	DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (int64, error)
}

type photoRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPhotoRepo(db *gorm.DB, baseLog *logger.Logger) PhotoRepo {
	repoLog := baseLog.With("repo", "PhotoRepo")
	return &photoRepo{db: db, log: repoLog}
}

func (pr *photoRepo) Create(ctx context.Context, tx *gorm.DB, photos []*types.Photo) ([]*types.Photo, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	if len(photos) == 0 {
		return []*types.Photo{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&photos).Error; err != nil {
		return nil, err
	}
	return photos, nil
}

func (pr *photoRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Photo, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var result types.Photo
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (pr *photoRepo) ListAll(ctx context.Context, tx *gorm.DB) ([]*types.Photo, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var results []*types.Photo
	if err := transaction.WithContext(ctx).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *photoRepo) ListByOwnerID(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) ([]*types.Photo, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var results []*types.Photo
	if ownerID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *photoRepo) DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	result := transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.Photo{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
