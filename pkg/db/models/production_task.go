package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/JGP1992/theitaliancorner-sub001/pkg/enums"
)

// ProductionTask is a factory work order for a single item on a day.
type ProductionTask struct {
	ID                uuid.UUID                  `gorm:"type:uuid;primaryKey"`
	Date              time.Time                  `gorm:"column:date;type:date;not null;index"`
	ItemID            uuid.UUID                  `gorm:"column:item_id;type:uuid;not null"`
	Item              *Item                      `gorm:"foreignKey:ItemID"`
	TargetQuantity    float64                    `gorm:"column:target_quantity;not null"`
	Unit              string                     `gorm:"column:unit;not null"`
	OutputKind        enums.TaskOutputKind       `gorm:"column:output_kind;not null"`
	Status            enums.ProductionTaskStatus `gorm:"column:status;not null"`
	AssignedToUserID  *uuid.UUID                 `gorm:"column:assigned_to_user_id;type:uuid"`
	PackagingOptionID *uuid.UUID                 `gorm:"column:packaging_option_id;type:uuid"`
	PackagingOption   *PackagingOption           `gorm:"foreignKey:PackagingOptionID"`
	Notes             *string                    `gorm:"column:notes"`
	TotalWeightKg     *float64                   `gorm:"column:total_weight_kg"`
	StartedAt         *time.Time                 `gorm:"column:started_at"`
	CompletedAt       *time.Time                 `gorm:"column:completed_at"`
	CreatedByID       *uuid.UUID                 `gorm:"column:created_by;type:uuid"`
	CreatedAt         time.Time                  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time                  `gorm:"column:updated_at;autoUpdateTime"`
}

func (p *ProductionTask) BeforeCreate(*gorm.DB) error {
	ensureID(&p.ID)
	return nil
}
