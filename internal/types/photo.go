package types

import (
	"time"

	"github.com/google/uuid"
)

// Photo links a stored object to its owning user. OwnerID is a soft
// reference: deleting a user leaves its photos behind, and display paths
// must tolerate a dangling owner.
type Photo struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID   uuid.UUID `gorm:"type:uuid;index;column:owner_id" json:"owner_id"`
	BucketKey string    `gorm:"not null;column:bucket_key" json:"bucket_key"`
	URL       string    `gorm:"not null;column:url" json:"url"`
	Caption   *string   `gorm:"column:caption" json:"caption"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (Photo) TableName() string {
	return "photo"
}
