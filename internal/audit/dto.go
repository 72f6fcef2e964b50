package audit

import (
	"time"

	"github.com/google/uuid"

	"github.com/JGP1992/theitaliancorner-sub001/pkg/db/models"
)

// EntryDTO is the API shape of an audit row.
type EntryDTO struct {
	ID          uuid.UUID      `json:"id"`
	ActorUserID *uuid.UUID     `json:"actorUserId,omitempty"`
	Action      string         `json:"action"`
	EntityType  string         `json:"entityType"`
	EntityID    *uuid.UUID     `json:"entityId,omitempty"`
	Details     map[string]any `json:"details,omitempty"`
	RequestID   *string        `json:"requestId,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
}

func FromModel(m models.AuditLog) EntryDTO {
	return EntryDTO{
		ID:          m.ID,
		ActorUserID: m.ActorUserID,
		Action:      m.Action,
		EntityType:  m.EntityType,
		EntityID:    m.EntityID,
		Details:     m.Details,
		RequestID:   m.RequestID,
		CreatedAt:   m.CreatedAt,
	}
}
