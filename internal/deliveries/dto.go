package deliveries

import (
	"time"

	"github.com/google/uuid"

	"github.com/JGP1992/theitaliancorner-sub001/pkg/dates"
	"github.com/JGP1992/theitaliancorner-sub001/pkg/db/models"
	"github.com/JGP1992/theitaliancorner-sub001/pkg/enums"
)

// PlanDTO is the API representation of a delivery plan.
type PlanDTO struct {
	ID        uuid.UUID            `json:"id"`
	Date      string               `json:"date"`
	Status    enums.DeliveryStatus `json:"status"`
	Notes     *string              `json:"notes,omitempty"`
	Store     *StoreRef            `json:"store,omitempty"`
	Customers []CustomerRef        `json:"customers"`
	Items     []ItemDTO            `json:"items"`
	CreatedBy *uuid.UUID           `json:"createdBy,omitempty"`
	CreatedAt time.Time            `json:"createdAt"`
	UpdatedAt time.Time            `json:"updatedAt"`
}

type StoreRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type CustomerRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type CategoryRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type CatalogItemRef struct {
	ID       uuid.UUID    `json:"id"`
	Name     string       `json:"name"`
	Unit     string       `json:"unit"`
	Category *CategoryRef `json:"category,omitempty"`
}

type PackagingRef struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Type           string    `json:"type"`
	VariableWeight bool      `json:"variableWeight"`
}

// ItemDTO is one delivery line with its catalog item and packaging.
type ItemDTO struct {
	ID                uuid.UUID       `json:"id"`
	PlanID            uuid.UUID       `json:"planId"`
	ItemID            uuid.UUID       `json:"itemId"`
	Item              *CatalogItemRef `json:"item,omitempty"`
	Quantity          float64         `json:"quantity"`
	Note              *string         `json:"note,omitempty"`
	WeightKg          *float64        `json:"weightKg"`
	PackagingOptionID *uuid.UUID      `json:"packagingOptionId"`
	PackagingOption   *PackagingRef   `json:"packagingOption,omitempty"`
	RequiresWeight    bool            `json:"requiresWeight"`
}

// ItemInput describes a delivery line on create or replace.
type ItemInput struct {
	ItemID            uuid.UUID  `json:"itemId" validate:"required"`
	Quantity          float64    `json:"quantity" validate:"gt=0"`
	Note              *string    `json:"note" validate:"omitempty,max=500"`
	PackagingOptionID *uuid.UUID `json:"packagingOptionId"`
	WeightKg          *float64   `json:"weightKg" validate:"omitempty,gt=0"`
}

// CreatePlanInput is the payload for creating a plan.
type CreatePlanInput struct {
	Date        string      `json:"date" validate:"required"`
	Status      string      `json:"status" validate:"omitempty,oneof=DRAFT CONFIRMED"`
	StoreID     *uuid.UUID  `json:"storeId"`
	CustomerIDs []uuid.UUID `json:"customerIds"`
	Notes       *string     `json:"notes" validate:"omitempty,max=2000"`
	Items       []ItemInput `json:"items" validate:"dive"`
}

// ReplaceItemsInput swaps the full item list of a plan.
type ReplaceItemsInput struct {
	Items []ItemInput `json:"items" validate:"dive"`
}

// TransitionInput requests a status change.
type TransitionInput struct {
	Status string `json:"status" validate:"required"`
}

// ListInput carries raw query values for plan listings.
type ListInput struct {
	From    string
	To      string
	Status  string
	StoreID *uuid.UUID
}

// WeightBlocker is a variable-weight line with no captured weight.
type WeightBlocker struct {
	DeliveryItemID uuid.UUID `json:"deliveryItemId"`
	ItemName       string    `json:"itemName"`
	PackagingName  string    `json:"packagingName"`
}

// Label renders the blocker as "<item name> (<packaging name>)".
func (b WeightBlocker) Label() string {
	return b.ItemName + " (" + b.PackagingName + ")"
}

func FromModel(plan *models.DeliveryPlan) *PlanDTO {
	if plan == nil {
		return nil
	}
	dto := &PlanDTO{
		ID:        plan.ID,
		Date:      dates.Format(plan.Date),
		Status:    plan.Status,
		Notes:     plan.Notes,
		Customers: make([]CustomerRef, 0, len(plan.Customers)),
		Items:     make([]ItemDTO, 0, len(plan.Items)),
		CreatedBy: plan.CreatedByID,
		CreatedAt: plan.CreatedAt,
		UpdatedAt: plan.UpdatedAt,
	}
	if plan.Store != nil {
		dto.Store = &StoreRef{ID: plan.Store.ID, Name: plan.Store.Name}
	}
	for _, c := range plan.Customers {
		dto.Customers = append(dto.Customers, CustomerRef{ID: c.ID, Name: c.Name})
	}
	for i := range plan.Items {
		dto.Items = append(dto.Items, ItemFromModel(&plan.Items[i]))
	}
	return dto
}

func ItemFromModel(item *models.DeliveryItem) ItemDTO {
	dto := ItemDTO{
		ID:                item.ID,
		PlanID:            item.PlanID,
		ItemID:            item.ItemID,
		Quantity:          item.Quantity,
		Note:              item.Note,
		WeightKg:          item.WeightKg,
		PackagingOptionID: item.PackagingOptionID,
		RequiresWeight:    item.RequiresWeight(),
	}
	if item.Item != nil {
		ref := &CatalogItemRef{ID: item.Item.ID, Name: item.Item.Name, Unit: item.Item.Unit}
		if item.Item.Category != nil {
			ref.Category = &CategoryRef{ID: item.Item.Category.ID, Name: item.Item.Category.Name}
		}
		dto.Item = ref
	}
	if p := item.PackagingOption; p != nil {
		dto.PackagingOption = &PackagingRef{ID: p.ID, Name: p.Name, Type: p.Type, VariableWeight: p.VariableWeight}
	}
	return dto
}

func (in ItemInput) ToModel() models.DeliveryItem {
	return models.DeliveryItem{
		ItemID:            in.ItemID,
		Quantity:          in.Quantity,
		Note:              in.Note,
		PackagingOptionID: in.PackagingOptionID,
		WeightKg:          in.WeightKg,
	}
}
