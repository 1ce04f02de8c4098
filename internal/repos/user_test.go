package repos

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/fotolog/fotolog-backend/internal/repos/testutil"
	"github.com/fotolog/fotolog-backend/internal/types"
)

func TestUserRepoCreateAndGet(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := NewUserRepo(db, testutil.Logger(t))
	ctx := context.Background()

	name := "Ana"
	user := &types.User{
		ID:          uuid.New(),
		Email:       "ana@example.com",
		Credential:  "hunter2",
		DisplayName: &name,
		CreatedAt:   time.Now(),
	}
	if _, err := repo.Create(ctx, tx, []*types.User{user}); err != nil {
		t.Fatalf("create user: %v", err)
	}

	got, err := repo.GetByID(ctx, tx, user.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if got.Email != "ana@example.com" {
		t.Fatalf("expected email ana@example.com, got %q", got.Email)
	}
	if got.DisplayName == nil || *got.DisplayName != "Ana" {
		t.Fatalf("expected display name Ana, got %v", got.DisplayName)
	}
}

func TestUserRepoCreateIfAbsentIsIdempotent(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := NewUserRepo(db, testutil.Logger(t))
	ctx := context.Background()

	id := uuid.New()
	first := &types.User{ID: id, Email: "bob@example.com", CreatedAt: time.Now()}
	created, err := repo.CreateIfAbsent(ctx, tx, first)
	if err != nil {
		t.Fatalf("first insert: %v", err)
	}
	if !created {
		t.Fatalf("expected first insert to create the row")
	}

	name := "Someone Else"
	second := &types.User{ID: id, Email: "other@example.com", DisplayName: &name, CreatedAt: time.Now()}
	for i := 0; i < 3; i++ {
		created, err = repo.CreateIfAbsent(ctx, tx, second)
		if err != nil {
			t.Fatalf("repeat insert %d: %v", i, err)
		}
		if created {
			t.Fatalf("repeat insert %d reported created", i)
		}
	}

	got, err := repo.GetByID(ctx, tx, id)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if got.Email != "bob@example.com" {
		t.Fatalf("existing row was modified: email %q", got.Email)
	}
	if got.DisplayName != nil {
		t.Fatalf("existing row was modified: display name %v", *got.DisplayName)
	}
}

func TestUserRepoUpdateFields(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := NewUserRepo(db, testutil.Logger(t))
	ctx := context.Background()

	user := &types.User{ID: uuid.New(), Email: "carla@example.com", Credential: "original", CreatedAt: time.Now()}
	if _, err := repo.Create(ctx, tx, []*types.User{user}); err != nil {
		t.Fatalf("create user: %v", err)
	}

	rows, err := repo.UpdateFields(ctx, tx, user.ID, map[string]interface{}{
		"credential": "rotated",
	})
	if err != nil {
		t.Fatalf("update fields: %v", err)
	}
	if rows != 1 {
		t.Fatalf("expected 1 row updated, got %d", rows)
	}

	got, err := repo.GetByID(ctx, tx, user.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if got.Credential != "rotated" {
		t.Fatalf("expected rotated credential, got %q", got.Credential)
	}

	rows, err = repo.UpdateFields(ctx, tx, uuid.New(), map[string]interface{}{"credential": "x"})
	if err != nil {
		t.Fatalf("update missing user: %v", err)
	}
	if rows != 0 {
		t.Fatalf("expected 0 rows for missing user, got %d", rows)
	}
}

func TestUserRepoDeleteByID(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := NewUserRepo(db, testutil.Logger(t))
	ctx := context.Background()

	user := &types.User{ID: uuid.New(), Email: "dora@example.com", CreatedAt: time.Now()}
	if _, err := repo.Create(ctx, tx, []*types.User{user}); err != nil {
		t.Fatalf("create user: %v", err)
	}

	rows, err := repo.DeleteByID(ctx, tx, user.ID)
	if err != nil {
		t.Fatalf("delete user: %v", err)
	}
	if rows != 1 {
		t.Fatalf("expected 1 row deleted, got %d", rows)
	}

	rows, err = repo.DeleteByID(ctx, tx, user.ID)
	if err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if rows != 0 {
		t.Fatalf("expected 0 rows on second delete, got %d", rows)
	}
}
