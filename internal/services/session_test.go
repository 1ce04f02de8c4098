package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/fotolog/fotolog-backend/internal/auth"
	errs "github.com/fotolog/fotolog-backend/internal/pkg/errors"
	"github.com/fotolog/fotolog-backend/internal/repos/testutil"
	"github.com/fotolog/fotolog-backend/internal/requestdata"
)

func TestSessionCurrentIdentity(t *testing.T) {
	identity := &auth.Identity{ID: uuid.New(), Email: "s@example.com"}
	provider := &fakeProvider{identity: identity}
	session := NewSessionService(testutil.Logger(t), provider)

	// No request data at all: anonymous, not an error.
	got, err := session.CurrentIdentity(context.Background())
	if err != nil || got != nil {
		t.Fatalf("expected (nil, nil) without a token, got (%v, %v)", got, err)
	}

	// Rejected token: anonymous, not an error.
	ctx := requestdata.WithRequestData(context.Background(), &requestdata.RequestData{TokenString: "bad"})
	got, err = session.CurrentIdentity(ctx)
	if err != nil || got != nil {
		t.Fatalf("expected (nil, nil) for rejected token, got (%v, %v)", got, err)
	}

	// Valid token resolves.
	ctx = requestdata.WithRequestData(context.Background(), &requestdata.RequestData{TokenString: "good"})
	got, err = session.CurrentIdentity(ctx)
	if err != nil {
		t.Fatalf("valid token: %v", err)
	}
	if got == nil || got.ID != identity.ID {
		t.Fatalf("wrong identity: %v", got)
	}

	// Provider outage is an error, not anonymity.
	provider.down = true
	got, err = session.CurrentIdentity(ctx)
	if got != nil {
		t.Fatalf("no identity may be returned during an outage")
	}
	if !errors.Is(err, errs.ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
}
