package services

import (
	"context"
	"fmt"
	"time"

	"github.com/fotolog/fotolog-backend/internal/auth"
	"github.com/fotolog/fotolog-backend/internal/platform/logger"
	"github.com/fotolog/fotolog-backend/internal/repos"
	"github.com/fotolog/fotolog-backend/internal/types"
)

// AccountService covers self-service signup and login. Registration creates
// the identity first and the row-store record second; if the second write
// fails the identity still exists and the next authenticated action will
// provision the missing row.
type AccountService interface {
	Register(ctx context.Context, email, credential, displayName string) (*auth.Identity, error)
	Login(ctx context.Context, email, credential, userAgent string) (*auth.Identity, string, error)
}

type accountService struct {
	log      *logger.Logger
	provider auth.Provider
	userRepo repos.UserRepo
	audit    AuditService
}

func NewAccountService(baseLog *logger.Logger, provider auth.Provider, userRepo repos.UserRepo, audit AuditService) AccountService {
	serviceLog := baseLog.With("service", "AccountService")
	return &accountService{log: serviceLog, provider: provider, userRepo: userRepo, audit: audit}
}

func (as *accountService) Register(ctx context.Context, email, credential, displayName string) (*auth.Identity, error) {
	identity, err := as.provider.SignUp(ctx, email, credential)
	if err != nil {
		return nil, err
	}

	var name *string
	if displayName != "" {
		name = &displayName
	}

	// The row-store keeps its own copy of the credential. It is written
	// here and on admin rotation only; the identity provider never reads
	// it back.
	record := &types.User{
		ID:          identity.ID,
		Email:       identity.Email,
		Credential:  credential,
		DisplayName: name,
		CreatedAt:   time.Now(),
	}
	if _, err := as.userRepo.Create(ctx, nil, []*types.User{record}); err != nil {
		return nil, fmt.Errorf("identity created but user record insert failed: %w", err)
	}

	as.audit.Record(identity.ID, types.ActionRegistration, map[string]interface{}{
		"email": identity.Email,
	})

	as.log.Info("account registered", "user_id", identity.ID)
	return identity, nil
}

func (as *accountService) Login(ctx context.Context, email, credential, userAgent string) (*auth.Identity, string, error) {
	identity, token, err := as.provider.SignInWithPassword(ctx, email, credential)
	if err != nil {
		return nil, "", err
	}

	as.audit.Record(identity.ID, types.ActionLogin, map[string]interface{}{
		"user_agent": userAgent,
	})

	as.log.Info("login succeeded", "user_id", identity.ID)
	return identity, token, nil
}
