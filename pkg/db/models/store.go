package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Store is a retail shop or the production factory.
type Store struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"column:name;not null;uniqueIndex"`
	Address   *string   `gorm:"column:address"`
	IsFactory bool      `gorm:"column:is_factory;not null"`
	IsActive  bool      `gorm:"column:is_active;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (s *Store) BeforeCreate(*gorm.DB) error {
	ensureID(&s.ID)
	return nil
}

// StoreInventory holds per-store stock targets for an item.
type StoreInventory struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	StoreID        uuid.UUID `gorm:"column:store_id;type:uuid;not null;uniqueIndex:idx_store_inventory_store_item"`
	Store          *Store    `gorm:"foreignKey:StoreID"`
	ItemID         uuid.UUID `gorm:"column:item_id;type:uuid;not null;uniqueIndex:idx_store_inventory_store_item"`
	Item           *Item     `gorm:"foreignKey:ItemID"`
	TargetQuantity *float64  `gorm:"column:target_quantity"`
	MinQuantity    *float64  `gorm:"column:min_quantity"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (StoreInventory) TableName() string {
	return "store_inventory"
}

func (s *StoreInventory) BeforeCreate(*gorm.DB) error {
	ensureID(&s.ID)
	return nil
}
