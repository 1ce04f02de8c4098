package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fotolog/fotolog-backend/internal/repos"
	"github.com/fotolog/fotolog-backend/internal/repos/testutil"
	"github.com/fotolog/fotolog-backend/internal/types"
)

func TestAuditRecordWritesInBackground(t *testing.T) {
	log := testutil.Logger(t)
	tx := testutil.Tx(t, testutil.DB(t))
	actionRepo := repos.NewUserActionRepo(tx, log)
	audit := NewAuditService(log, actionRepo)

	actor := uuid.New()
	audit.Record(actor, types.ActionLogin, map[string]interface{}{"user_agent": "test-agent"})
	audit.Flush()

	actions, err := actionRepo.ListByActorID(context.Background(), tx, actor)
	if err != nil {
		t.Fatalf("list actions: %v", err)
	}
	if len(actions) != 1 {
		t.Fatalf("expected 1 action, got %d", len(actions))
	}
	if actions[0].Kind != types.ActionLogin {
		t.Fatalf("expected login action, got %q", actions[0].Kind)
	}

	var detail map[string]string
	if err := json.Unmarshal(actions[0].Detail, &detail); err != nil {
		t.Fatalf("decode detail: %v", err)
	}
	if detail["user_agent"] != "test-agent" {
		t.Fatalf("detail not recorded: %v", detail)
	}
}

func TestAuditRecordSwallowsWriteFailures(t *testing.T) {
	log := testutil.Logger(t)
	tx := testutil.Tx(t, testutil.DB(t))
	audit := NewAuditService(log, &failingActionRepo{UserActionRepo: repos.NewUserActionRepo(tx, log)})

	// Must not panic or surface anything.
	audit.Record(uuid.New(), types.ActionRegistration, nil)
	audit.Flush()
}

type failingActionRepo struct {
	repos.UserActionRepo
}

func (r *failingActionRepo) Create(ctx context.Context, tx *gorm.DB, actions []*types.UserAction) ([]*types.UserAction, error) {
	return nil, errors.New("audit store down")
}
