package services

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/fotolog/fotolog-backend/internal/platform/logger"
	"github.com/fotolog/fotolog-backend/internal/repos"
	"github.com/fotolog/fotolog-backend/internal/types"
)

const auditWriteTimeout = 5 * time.Second

// AuditService appends behavioral events without ever blocking or failing
// the flow that triggered them. Writes happen on a background goroutine and
// insert errors are logged and dropped.
type AuditService interface {
	Record(actorID uuid.UUID, kind string, detail map[string]interface{})
	// Flush blocks until every Record issued so far has finished. Meant for
	// shutdown and tests.
	Flush()
}

type auditService struct {
	log        *logger.Logger
	actionRepo repos.UserActionRepo
	wg         sync.WaitGroup
}

func NewAuditService(baseLog *logger.Logger, actionRepo repos.UserActionRepo) AuditService {
	serviceLog := baseLog.With("service", "AuditService")
	return &auditService{log: serviceLog, actionRepo: actionRepo}
}

func (as *auditService) Record(actorID uuid.UUID, kind string, detail map[string]interface{}) {
	var payload datatypes.JSON
	if len(detail) > 0 {
		raw, err := json.Marshal(detail)
		if err != nil {
			as.log.Warn("audit detail not serializable, recording without it", "kind", kind, "error", err)
		} else {
			payload = datatypes.JSON(raw)
		}
	}

	action := &types.UserAction{
		ID:        uuid.New(),
		ActorID:   actorID,
		Kind:      kind,
		Detail:    payload,
		CreatedAt: time.Now(),
	}

	as.wg.Add(1)
	go func() {
		defer as.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), auditWriteTimeout)
		defer cancel()

		if _, err := as.actionRepo.Create(ctx, nil, []*types.UserAction{action}); err != nil {
			as.log.Warn("audit record dropped", "kind", kind, "actor_id", actorID, "error", err)
		}
	}()
}

func (as *auditService) Flush() {
	as.wg.Wait()
}
