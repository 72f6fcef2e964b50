package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Stocktake is a counted snapshot of a store's inventory.
type Stocktake struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	StoreID       uuid.UUID       `gorm:"column:store_id;type:uuid;not null;index"`
	Store         *Store          `gorm:"foreignKey:StoreID"`
	Date          time.Time       `gorm:"column:date;not null"`
	IsMaster      bool            `gorm:"column:is_master;not null"`
	SubmittedByID *uuid.UUID      `gorm:"column:submitted_by;type:uuid"`
	Notes         *string         `gorm:"column:notes"`
	Items         []StocktakeItem `gorm:"foreignKey:StocktakeID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime"`
}

func (s *Stocktake) BeforeCreate(*gorm.DB) error {
	ensureID(&s.ID)
	return nil
}

type StocktakeItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	StocktakeID uuid.UUID `gorm:"column:stocktake_id;type:uuid;not null;index"`
	ItemID      uuid.UUID `gorm:"column:item_id;type:uuid;not null"`
	Item        *Item     `gorm:"foreignKey:ItemID"`
	Quantity    float64   `gorm:"column:quantity;not null"`
}

func (s *StocktakeItem) BeforeCreate(*gorm.DB) error {
	ensureID(&s.ID)
	return nil
}
