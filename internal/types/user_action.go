package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	ActionLogin        = "login"
	ActionRegistration = "registration"
)

// UserAction is an append-only audit entry. Nothing in the business logic
// reads it back; only the admin surface may delete rows.
type UserAction struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ActorID   uuid.UUID      `gorm:"type:uuid;index;column:actor_id" json:"actor_id"`
	Kind      string         `gorm:"not null;column:kind" json:"kind"`
	Detail    datatypes.JSON `gorm:"column:detail" json:"detail"`
	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
}

func (UserAction) TableName() string {
	return "user_action"
}
