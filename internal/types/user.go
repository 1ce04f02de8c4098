package types

import (
	"time"

	"github.com/google/uuid"
)

// User is the application's own row for a principal, keyed by the auth
// provider's identity id. The Credential column mirrors what the observed
// system stored: a plaintext copy that is NOT consulted at login and can
// diverge from the provider's real credential.
type User struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email       string    `gorm:"not null;column:email" json:"email"`
	Credential  string    `gorm:"column:credential" json:"-"`
	DisplayName *string   `gorm:"column:display_name" json:"display_name"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
}

func (User) TableName() string {
	return "user"
}
