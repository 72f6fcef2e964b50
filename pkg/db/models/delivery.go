package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/JGP1992/theitaliancorner-sub001/pkg/enums"
)

// DeliveryPlan is a dated shipment to a store or a set of customers.
type DeliveryPlan struct {
	ID          uuid.UUID            `gorm:"type:uuid;primaryKey"`
	Date        time.Time            `gorm:"column:date;type:date;not null;index"`
	Status      enums.DeliveryStatus `gorm:"column:status;not null"`
	Notes       *string              `gorm:"column:notes"`
	StoreID     *uuid.UUID           `gorm:"column:store_id;type:uuid"`
	Store       *Store               `gorm:"foreignKey:StoreID"`
	Customers   []Customer           `gorm:"many2many:delivery_plan_customers;constraint:OnDelete:CASCADE"`
	Items       []DeliveryItem       `gorm:"foreignKey:PlanID;constraint:OnDelete:CASCADE"`
	CreatedByID *uuid.UUID           `gorm:"column:created_by;type:uuid"`
	CreatedAt   time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}

func (p *DeliveryPlan) BeforeCreate(*gorm.DB) error {
	ensureID(&p.ID)
	return nil
}

// DeliveryItem is one line of a delivery plan.
type DeliveryItem struct {
	ID                uuid.UUID        `gorm:"type:uuid;primaryKey"`
	PlanID            uuid.UUID        `gorm:"column:plan_id;type:uuid;not null;index"`
	ItemID            uuid.UUID        `gorm:"column:item_id;type:uuid;not null"`
	Item              *Item            `gorm:"foreignKey:ItemID"`
	Quantity          float64          `gorm:"column:quantity;not null"`
	Note              *string          `gorm:"column:note"`
	WeightKg          *float64         `gorm:"column:weight_kg"`
	PackagingOptionID *uuid.UUID       `gorm:"column:packaging_option_id;type:uuid"`
	PackagingOption   *PackagingOption `gorm:"foreignKey:PackagingOptionID"`
	CreatedAt         time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

func (i *DeliveryItem) BeforeCreate(*gorm.DB) error {
	ensureID(&i.ID)
	return nil
}

// RequiresWeight reports whether a captured weight must exist before dispatch.
func (i DeliveryItem) RequiresWeight() bool {
	return i.PackagingOption != nil && i.PackagingOption.VariableWeight
}

// HasWeight reports whether a usable weight was captured.
func (i DeliveryItem) HasWeight() bool {
	return i.WeightKg != nil && *i.WeightKg > 0
}
