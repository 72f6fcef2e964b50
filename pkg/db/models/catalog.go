package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GelatoFlavorsCategory is the category whose items feed the production worklist.
const GelatoFlavorsCategory = "Gelato Flavors"

type Category struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"column:name;not null;uniqueIndex"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (c *Category) BeforeCreate(*gorm.DB) error {
	ensureID(&c.ID)
	return nil
}

// Item is a catalog entry (flavor, supply, packaging material).
type Item struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name       string    `gorm:"column:name;not null"`
	CategoryID uuid.UUID `gorm:"column:category_id;type:uuid;not null"`
	Category   *Category `gorm:"foreignKey:CategoryID"`
	Unit       string    `gorm:"column:unit;not null"`
	IsActive   bool      `gorm:"column:is_active;not null"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (i *Item) BeforeCreate(*gorm.DB) error {
	ensureID(&i.ID)
	return nil
}

// PackagingOption describes how a delivered quantity is packed.
type PackagingOption struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name                string    `gorm:"column:name;not null"`
	Type                string    `gorm:"column:type;not null"`
	SizeValue           *float64  `gorm:"column:size_value"`
	SizeUnit            *string   `gorm:"column:size_unit"`
	VariableWeight      bool      `gorm:"column:variable_weight;not null"`
	AllowedForStores    bool      `gorm:"column:allowed_for_stores;not null"`
	AllowedForCustomers bool      `gorm:"column:allowed_for_customers;not null"`
	IsActive            bool      `gorm:"column:is_active;not null"`
	CreatedAt           time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt           time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (p *PackagingOption) BeforeCreate(*gorm.DB) error {
	ensureID(&p.ID)
	return nil
}
