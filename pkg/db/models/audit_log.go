package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/JGP1992/theitaliancorner-sub001/pkg/types"
)

type AuditLog struct {
	ID          uuid.UUID     `gorm:"type:uuid;primaryKey"`
	ActorUserID *uuid.UUID    `gorm:"column:actor_user_id;type:uuid"`
	Action      string        `gorm:"column:action;not null"`
	EntityType  string        `gorm:"column:entity_type;not null"`
	EntityID    *uuid.UUID    `gorm:"column:entity_id;type:uuid"`
	Details     types.JSONMap `gorm:"column:details"`
	RequestID   *string       `gorm:"column:request_id"`
	CreatedAt   time.Time     `gorm:"column:created_at;autoCreateTime;index"`
}

func (a *AuditLog) BeforeCreate(*gorm.DB) error {
	ensureID(&a.ID)
	return nil
}
