package services

import (
	"context"
	"errors"

	"github.com/fotolog/fotolog-backend/internal/auth"
	errs "github.com/fotolog/fotolog-backend/internal/pkg/errors"
	"github.com/fotolog/fotolog-backend/internal/platform/logger"
	"github.com/fotolog/fotolog-backend/internal/requestdata"
)

// SessionService resolves the caller's identity from the request context.
// A missing or rejected token yields (nil, nil); only provider outages
// surface as errors, so callers can tell "not signed in" apart from
// "could not ask".
type SessionService interface {
	CurrentIdentity(ctx context.Context) (*auth.Identity, error)
}

type sessionService struct {
	log      *logger.Logger
	provider auth.Provider
}

func NewSessionService(baseLog *logger.Logger, provider auth.Provider) SessionService {
	serviceLog := baseLog.With("service", "SessionService")
	return &sessionService{log: serviceLog, provider: provider}
}

func (ss *sessionService) CurrentIdentity(ctx context.Context) (*auth.Identity, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.TokenString == "" {
		return nil, nil
	}

	identity, err := ss.provider.IdentityFromToken(ctx, rd.TokenString)
	if err != nil {
		if errors.Is(err, errs.ErrNotAuthenticated) {
			ss.log.Debug("token rejected by identity provider")
			return nil, nil
		}
		ss.log.Error("identity provider lookup failed", "error", err)
		return nil, err
	}
	return identity, nil
}
