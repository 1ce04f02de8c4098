package repos

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/fotolog/fotolog-backend/internal/repos/testutil"
	"github.com/fotolog/fotolog-backend/internal/types"
)

func TestUserActionRepoCreateAndListByActor(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := NewUserActionRepo(db, testutil.Logger(t))
	ctx := context.Background()

	actor := uuid.New()
	actions := []*types.UserAction{
		{
			ID:        uuid.New(),
			ActorID:   actor,
			Kind:      types.ActionRegistration,
			Detail:    datatypes.JSON([]byte(`{"email":"eva@example.com"}`)),
			CreatedAt: time.Now().Add(-time.Minute),
		},
		{
			ID:        uuid.New(),
			ActorID:   actor,
			Kind:      types.ActionLogin,
			Detail:    datatypes.JSON([]byte(`{"user_agent":"test"}`)),
			CreatedAt: time.Now(),
		},
	}
	if _, err := repo.Create(ctx, tx, actions); err != nil {
		t.Fatalf("create actions: %v", err)
	}

	got, err := repo.ListByActorID(ctx, tx, actor)
	if err != nil {
		t.Fatalf("list by actor: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 actions, got %d", len(got))
	}
	if got[0].Kind != types.ActionLogin {
		t.Fatalf("expected newest first, got kind %q", got[0].Kind)
	}
}

func TestUserActionRepoDeleteByID(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := NewUserActionRepo(db, testutil.Logger(t))
	ctx := context.Background()

	action := &types.UserAction{
		ID:        uuid.New(),
		ActorID:   uuid.New(),
		Kind:      types.ActionLogin,
		CreatedAt: time.Now(),
	}
	if _, err := repo.Create(ctx, tx, []*types.UserAction{action}); err != nil {
		t.Fatalf("create action: %v", err)
	}

	rows, err := repo.DeleteByID(ctx, tx, action.ID)
	if err != nil {
		t.Fatalf("delete action: %v", err)
	}
	if rows != 1 {
		t.Fatalf("expected 1 row deleted, got %d", rows)
	}
}
