package audit

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/JGP1992/theitaliancorner-sub001/pkg/db/models"
	"github.com/JGP1992/theitaliancorner-sub001/pkg/logger"
	"github.com/JGP1992/theitaliancorner-sub001/pkg/requestctx"
	"github.com/JGP1992/theitaliancorner-sub001/pkg/types"
)

// Entry describes one audited mutation.
type Entry struct {
	ActorID    *uuid.UUID
	Action     string
	EntityType string
	EntityID   *uuid.UUID
	Details    map[string]any
}

type entryWriter interface {
	Create(ctx context.Context, entry *models.AuditLog) error
}

// Recorder writes audit entries. Failures are logged and swallowed.
type Recorder struct {
	repo entryWriter
	logg *logger.Logger
	now  func() time.Time
}

func NewRecorder(repo entryWriter, logg *logger.Logger) *Recorder {
	if logg == nil {
		logg = logger.Nop()
	}
	return &Recorder{repo: repo, logg: logg, now: time.Now}
}

func (r *Recorder) Record(ctx context.Context, entry Entry) {
	if r == nil || r.repo == nil {
		return
	}

	actorID := entry.ActorID
	if actorID == nil {
		if actor, ok := requestctx.ActorFrom(ctx); ok && actor.UserID != uuid.Nil {
			id := actor.UserID
			actorID = &id
		}
	}

	row := &models.AuditLog{
		ActorUserID: actorID,
		Action:      entry.Action,
		EntityType:  entry.EntityType,
		EntityID:    entry.EntityID,
		Details:     types.JSONMap(entry.Details),
		CreatedAt:   r.now().UTC(),
	}
	if reqID := requestctx.RequestID(ctx); reqID != "" {
		row.RequestID = &reqID
	}

	if err := r.repo.Create(ctx, row); err != nil {
		logCtx := r.logg.WithFields(ctx, map[string]any{
			"audit_action": entry.Action,
			"entity_type":  entry.EntityType,
		})
		r.logg.Error(logCtx, "audit.record_failed", err)
	}
}

// Ref returns a pointer to id, for Entry fields.
func Ref(id uuid.UUID) *uuid.UUID {
	if id == uuid.Nil {
		return nil
	}
	return &id
}
