package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	errs "github.com/fotolog/fotolog-backend/internal/pkg/errors"
	"github.com/fotolog/fotolog-backend/internal/platform/logger"
)

// Identity is the principal the provider hands back after a successful
// sign-up or sign-in. The rest of the system only ever reads it.
type Identity struct {
	ID    uuid.UUID
	Email string
}

// IdentityRecord is the provider's own credential row. It is deliberately a
// separate table from the application's "user" table: rotating the user
// row's credential column does not touch this record, and login only ever
// checks this one.
type IdentityRecord struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email        string    `gorm:"uniqueIndex;not null;column:email"`
	PasswordHash string    `gorm:"not null;column:password_hash"`
	CreatedAt    time.Time `gorm:"not null"`
}

func (IdentityRecord) TableName() string {
	return "auth_identity"
}

type Provider interface {
	SignUp(ctx context.Context, email, credential string) (*Identity, error)
	SignInWithPassword(ctx context.Context, email, credential string) (*Identity, string, error)
	IdentityFromToken(ctx context.Context, tokenString string) (*Identity, error)
	UpdateCredential(ctx context.Context, identityID uuid.UUID, newCredential string) error
}

type provider struct {
	db           *gorm.DB
	log          *logger.Logger
	jwtSecretKey string
	accessTTL    time.Duration
}

func NewProvider(db *gorm.DB, log *logger.Logger, jwtSecretKey string, accessTTL time.Duration) Provider {
	providerLog := log.With("service", "AuthProvider")
	return &provider{
		db:           db,
		log:          providerLog,
		jwtSecretKey: jwtSecretKey,
		accessTTL:    accessTTL,
	}
}

func (p *provider) SignUp(ctx context.Context, email, credential string) (*Identity, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || credential == "" {
		return nil, fmt.Errorf("email and credential required: %w", errs.ErrInvalidCredentials)
	}

	var count int64
	if err := p.db.WithContext(ctx).
		Model(&IdentityRecord{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check existing identity: %w", errs.ErrProviderUnavailable)
	}
	if count > 0 {
		return nil, fmt.Errorf("identity for email: %w", errs.ErrAlreadyExists)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(credential), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash credential: %w", err)
	}

	rec := IdentityRecord{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}
	if err := p.db.WithContext(ctx).Create(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("identity for email: %w", errs.ErrAlreadyExists)
		}
		return nil, fmt.Errorf("failed to create identity: %w", errs.ErrProviderUnavailable)
	}
	return &Identity{ID: rec.ID, Email: rec.Email}, nil
}

func (p *provider) SignInWithPassword(ctx context.Context, email, credential string) (*Identity, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var rec IdentityRecord
	if err := p.db.WithContext(ctx).
		Where("email = ?", email).
		First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", errs.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to load identity: %w", errs.ErrProviderUnavailable)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(rec.PasswordHash), []byte(credential)); err != nil {
		return nil, "", errs.ErrInvalidCredentials
	}

	token, err := p.generateAccessToken(&rec)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate access token: %w", err)
	}
	return &Identity{ID: rec.ID, Email: rec.Email}, token, nil
}

func (p *provider) IdentityFromToken(ctx context.Context, tokenString string) (*Identity, error) {
	if strings.TrimSpace(tokenString) == "" {
		return nil, errs.ErrNotAuthenticated
	}
	parsedToken, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(p.jwtSecretKey), nil
	})
	if err != nil || !parsedToken.Valid {
		return nil, errs.ErrNotAuthenticated
	}
	claims, ok := parsedToken.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return nil, errs.ErrNotAuthenticated
	}
	identityID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, errs.ErrNotAuthenticated
	}

	var rec IdentityRecord
	if err := p.db.WithContext(ctx).
		Where("id = ?", identityID).
		First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotAuthenticated
		}
		return nil, fmt.Errorf("failed to load identity: %w", errs.ErrProviderUnavailable)
	}
	return &Identity{ID: rec.ID, Email: rec.Email}, nil
}

func (p *provider) UpdateCredential(ctx context.Context, identityID uuid.UUID, newCredential string) error {
	if newCredential == "" {
		return fmt.Errorf("empty credential: %w", errs.ErrInvalidCredentials)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newCredential), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash credential: %w", err)
	}
	result := p.db.WithContext(ctx).
		Model(&IdentityRecord{}).
		Where("id = ?", identityID).
		Update("password_hash", string(hash))
	if result.Error != nil {
		return fmt.Errorf("failed to update credential: %w", errs.ErrProviderUnavailable)
	}
	if result.RowsAffected == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (p *provider) generateAccessToken(rec *IdentityRecord) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   rec.ID.String(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(p.accessTTL)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(p.jwtSecretKey))
}
