package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fotolog/fotolog-backend/internal/platform/logger"
	"github.com/fotolog/fotolog-backend/internal/types"
)

type UserActionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, actions []*types.UserAction) ([]*types.UserAction, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.UserAction, error)
	ListByActorID(ctx context.Context, tx *gorm.DB, actorID uuid.UUID) ([]*types.UserAction, error)
	DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (int64, error)
}

type userActionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserActionRepo(db *gorm.DB, baseLog *logger.Logger) UserActionRepo {
	repoLog := baseLog.With("repo", "UserActionRepo")
	return &userActionRepo{db: db, log: repoLog}
}

func (ar *userActionRepo) Create(ctx context.Context, tx *gorm.DB, actions []*types.UserAction) ([]*types.UserAction, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	if len(actions) == 0 {
		return []*types.UserAction{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&actions).Error; err != nil {
		return nil, err
	}
	return actions, nil
}

func (ar *userActionRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.UserAction, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	var results []*types.UserAction
	if err := transaction.WithContext(ctx).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ar *userActionRepo) ListByActorID(ctx context.Context, tx *gorm.DB, actorID uuid.UUID) ([]*types.UserAction, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	var results []*types.UserAction
	if actorID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("actor_id = ?", actorID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ar *userActionRepo) DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	result := transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.UserAction{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
