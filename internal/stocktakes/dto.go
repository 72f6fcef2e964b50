package stocktakes

import (
	"time"

	"github.com/google/uuid"

	"github.com/JGP1992/theitaliancorner-sub001/pkg/db/models"
)

// StocktakeDTO is a submitted count with its lines.
type StocktakeDTO struct {
	ID            uuid.UUID  `json:"id"`
	StoreID       uuid.UUID  `json:"storeId"`
	StoreName     string     `json:"storeName,omitempty"`
	Date          time.Time  `json:"date"`
	IsMaster      bool       `json:"isMaster"`
	SubmittedByID *uuid.UUID `json:"submittedById,omitempty"`
	Notes         *string    `json:"notes,omitempty"`
	Items         []LineDTO  `json:"items"`
}

type LineDTO struct {
	ItemID   uuid.UUID `json:"itemId"`
	ItemName string    `json:"itemName"`
	Category string    `json:"category"`
	Unit     string    `json:"unit"`
	Quantity float64   `json:"quantity"`
}

// SubmitInput is one store count. CountedAt defaults to the submission time.
type SubmitInput struct {
	StoreID   uuid.UUID   `json:"storeId" validate:"required"`
	CountedAt *time.Time  `json:"countedAt"`
	IsMaster  bool        `json:"isMaster"`
	Notes     *string     `json:"notes" validate:"omitempty,max=1000"`
	Items     []LineInput `json:"items" validate:"required,min=1,dive"`
}

type LineInput struct {
	ItemID   uuid.UUID `json:"itemId" validate:"required"`
	Quantity float64   `json:"quantity" validate:"gte=0"`
}

func FromModel(m *models.Stocktake) *StocktakeDTO {
	if m == nil {
		return nil
	}
	dto := &StocktakeDTO{
		ID:            m.ID,
		StoreID:       m.StoreID,
		Date:          m.Date,
		IsMaster:      m.IsMaster,
		SubmittedByID: m.SubmittedByID,
		Notes:         m.Notes,
		Items:         make([]LineDTO, 0, len(m.Items)),
	}
	if m.Store != nil {
		dto.StoreName = m.Store.Name
	}
	for _, line := range m.Items {
		out := LineDTO{ItemID: line.ItemID, Quantity: line.Quantity}
		if line.Item != nil {
			out.ItemName = line.Item.Name
			out.Unit = line.Item.Unit
			if line.Item.Category != nil {
				out.Category = line.Item.Category.Name
			}
		}
		dto.Items = append(dto.Items, out)
	}
	return dto
}
