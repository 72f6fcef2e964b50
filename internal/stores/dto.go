package stores

import (
	"time"

	"github.com/google/uuid"

	"github.com/JGP1992/theitaliancorner-sub001/pkg/db/models"
	"github.com/JGP1992/theitaliancorner-sub001/pkg/types"
)

// StoreDTO exposes a store in API responses.
type StoreDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Address   *string   `json:"address,omitempty"`
	IsFactory bool      `json:"isFactory"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateStoreInput holds creation-time data for a new store.
type CreateStoreInput struct {
	Name      string  `json:"name" validate:"notblank,max=120"`
	Address   *string `json:"address" validate:"omitempty,max=255"`
	IsFactory bool    `json:"isFactory"`
}

// UpdateStoreInput captures the mutable store fields. Absent fields are left
// untouched; an explicit null address clears it.
type UpdateStoreInput struct {
	Name      *string              `json:"name" validate:"omitempty,max=120"`
	Address   types.NullableString `json:"address"`
	IsFactory *bool                `json:"isFactory"`
	IsActive  *bool                `json:"isActive"`
}

// TargetDTO is a per-store stock target for one item.
type TargetDTO struct {
	ID             uuid.UUID `json:"id"`
	StoreID        uuid.UUID `json:"storeId"`
	ItemID         uuid.UUID `json:"itemId"`
	ItemName       string    `json:"itemName"`
	Category       string    `json:"category"`
	Unit           string    `json:"unit"`
	TargetQuantity *float64  `json:"targetQuantity"`
	MinQuantity    *float64  `json:"minQuantity"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// UpsertTargetInput sets the thresholds for one item at one store.
type UpsertTargetInput struct {
	ItemID         uuid.UUID `json:"itemId" validate:"required"`
	TargetQuantity *float64  `json:"targetQuantity" validate:"omitempty,gte=0"`
	MinQuantity    *float64  `json:"minQuantity" validate:"omitempty,gte=0"`
}

// FromModel maps the persisted store into a DTO.
func FromModel(m *models.Store) *StoreDTO {
	if m == nil {
		return nil
	}
	return &StoreDTO{
		ID:        m.ID,
		Name:      m.Name,
		Address:   m.Address,
		IsFactory: m.IsFactory,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func TargetFromModel(m *models.StoreInventory) TargetDTO {
	dto := TargetDTO{
		ID:             m.ID,
		StoreID:        m.StoreID,
		ItemID:         m.ItemID,
		TargetQuantity: m.TargetQuantity,
		MinQuantity:    m.MinQuantity,
		UpdatedAt:      m.UpdatedAt,
	}
	if m.Item != nil {
		dto.ItemName = m.Item.Name
		dto.Unit = m.Item.Unit
		if m.Item.Category != nil {
			dto.Category = m.Item.Category.Name
		}
	}
	return dto
}
