package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/fotolog/fotolog-backend/internal/auth"
	errs "github.com/fotolog/fotolog-backend/internal/pkg/errors"
	"github.com/fotolog/fotolog-backend/internal/repos"
	"github.com/fotolog/fotolog-backend/internal/repos/testutil"
	"github.com/fotolog/fotolog-backend/internal/types"
)

func TestAdminRotateCredentialDoesNotTouchProvider(t *testing.T) {
	log := testutil.Logger(t)
	tx := testutil.Tx(t, testutil.DB(t))
	ctx := context.Background()

	provider := auth.NewProvider(tx, log, "test-secret", time.Hour)
	userRepo := repos.NewUserRepo(tx, log)
	actionRepo := repos.NewUserActionRepo(tx, log)
	photoRepo := repos.NewPhotoRepo(tx, log)
	bucket := newMemBucket()
	photoSvc := NewPhotoService(log, photoRepo, bucket)
	admin := NewAdminService(log, userRepo, actionRepo, photoSvc, nil)

	email := uuid.NewString() + "@example.com"
	identity, err := provider.SignUp(ctx, email, "original-secret")
	if err != nil {
		t.Fatalf("sign up: %v", err)
	}
	user := &types.User{ID: identity.ID, Email: email, Credential: "original-secret", CreatedAt: time.Now()}
	if _, err := userRepo.Create(ctx, tx, []*types.User{user}); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	if err := admin.RotateCredential(ctx, identity.ID, "rotated-secret"); err != nil {
		t.Fatalf("rotate credential: %v", err)
	}

	// Row-store copy changed.
	got, err := userRepo.GetByID(ctx, tx, identity.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if got.Credential != "rotated-secret" {
		t.Fatalf("row-store credential not rotated: %q", got.Credential)
	}

	// The provider still verifies the original secret; the rotated one
	// does not sign in.
	if _, _, err := provider.SignInWithPassword(ctx, email, "original-secret"); err != nil {
		t.Fatalf("original secret stopped working: %v", err)
	}
	if _, _, err := provider.SignInWithPassword(ctx, email, "rotated-secret"); !errors.Is(err, errs.ErrInvalidCredentials) {
		t.Fatalf("rotated secret must not sign in, got %v", err)
	}
}

func TestAdminRotateCredentialMissingUser(t *testing.T) {
	log := testutil.Logger(t)
	tx := testutil.Tx(t, testutil.DB(t))
	admin := NewAdminService(log, repos.NewUserRepo(tx, log), repos.NewUserActionRepo(tx, log), nil, nil)

	err := admin.RotateCredential(context.Background(), uuid.New(), "x")
	if !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAdminDeleteUserLeavesPhotosBehind(t *testing.T) {
	log := testutil.Logger(t)
	tx := testutil.Tx(t, testutil.DB(t))
	ctx := context.Background()

	userRepo := repos.NewUserRepo(tx, log)
	actionRepo := repos.NewUserActionRepo(tx, log)
	photoRepo := repos.NewPhotoRepo(tx, log)
	admin := NewAdminService(log, userRepo, actionRepo, NewPhotoService(log, photoRepo, newMemBucket()), nil)

	user := &types.User{ID: uuid.New(), Email: "gone@example.com", CreatedAt: time.Now()}
	if _, err := userRepo.Create(ctx, tx, []*types.User{user}); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	photo := &types.Photo{
		ID:        uuid.New(),
		OwnerID:   user.ID,
		BucketKey: "photos/k",
		URL:       "https://cdn.test/photos/k",
		CreatedAt: time.Now(),
	}
	if _, err := photoRepo.Create(ctx, tx, []*types.Photo{photo}); err != nil {
		t.Fatalf("seed photo: %v", err)
	}

	if err := admin.DeleteUser(ctx, user.ID); err != nil {
		t.Fatalf("delete user: %v", err)
	}

	if _, err := userRepo.GetByID(ctx, tx, user.ID); err == nil {
		t.Fatalf("user row still present")
	}
	photos, err := photoRepo.ListByOwnerID(ctx, tx, user.ID)
	if err != nil {
		t.Fatalf("list photos: %v", err)
	}
	if len(photos) != 1 {
		t.Fatalf("expected the photo to survive its owner, got %d", len(photos))
	}
}

func TestAdminUpdateUser(t *testing.T) {
	log := testutil.Logger(t)
	tx := testutil.Tx(t, testutil.DB(t))
	ctx := context.Background()

	userRepo := repos.NewUserRepo(tx, log)
	admin := NewAdminService(log, userRepo, repos.NewUserActionRepo(tx, log), nil, nil)

	user := &types.User{ID: uuid.New(), Email: "old@example.com", CreatedAt: time.Now()}
	if _, err := userRepo.Create(ctx, tx, []*types.User{user}); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	name := "New Name"
	if err := admin.UpdateUser(ctx, user.ID, "new@example.com", &name); err != nil {
		t.Fatalf("update user: %v", err)
	}

	got, err := userRepo.GetByID(ctx, tx, user.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if got.Email != "new@example.com" || got.DisplayName == nil || *got.DisplayName != "New Name" {
		t.Fatalf("update not applied: %+v", got)
	}
}
