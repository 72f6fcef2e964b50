package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/JGP1992/theitaliancorner-sub001/pkg/db/models"
)

type CategoryDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

type ItemDTO struct {
	ID         uuid.UUID    `json:"id"`
	Name       string       `json:"name"`
	Unit       string       `json:"unit"`
	IsActive   bool         `json:"isActive"`
	CategoryID uuid.UUID    `json:"categoryId"`
	Category   *CategoryDTO `json:"category,omitempty"`
	CreatedAt  time.Time    `json:"createdAt"`
}

// PackagingDTO describes a packaging option and where it may be used.
type PackagingDTO struct {
	ID                  uuid.UUID `json:"id"`
	Name                string    `json:"name"`
	Type                string    `json:"type"`
	SizeValue           *float64  `json:"sizeValue,omitempty"`
	SizeUnit            *string   `json:"sizeUnit,omitempty"`
	VariableWeight      bool      `json:"variableWeight"`
	AllowedForStores    bool      `json:"allowedForStores"`
	AllowedForCustomers bool      `json:"allowedForCustomers"`
	IsActive            bool      `json:"isActive"`
}

type CreateCategoryInput struct {
	Name string `json:"name" validate:"notblank,max=100"`
}

// ItemListFilters narrows the item listing.
type ItemListFilters struct {
	CategoryID      *uuid.UUID
	Query           string
	IncludeInactive bool
}

type CreateItemInput struct {
	Name       string    `json:"name" validate:"notblank,max=120"`
	CategoryID uuid.UUID `json:"categoryId" validate:"required"`
	Unit       string    `json:"unit" validate:"notblank,max=40"`
}

type CreatePackagingInput struct {
	Name                string   `json:"name" validate:"notblank,max=100"`
	Type                string   `json:"type" validate:"notblank,max=40"`
	SizeValue           *float64 `json:"sizeValue" validate:"omitempty,gt=0"`
	SizeUnit            *string  `json:"sizeUnit" validate:"omitempty,max=20"`
	VariableWeight      bool     `json:"variableWeight"`
	AllowedForStores    *bool    `json:"allowedForStores"`
	AllowedForCustomers *bool    `json:"allowedForCustomers"`
}

// UpdatePackagingInput patches a packaging option; absent fields are kept.
type UpdatePackagingInput struct {
	Name                *string  `json:"name" validate:"omitempty,max=100"`
	SizeValue           *float64 `json:"sizeValue" validate:"omitempty,gt=0"`
	SizeUnit            *string  `json:"sizeUnit" validate:"omitempty,max=20"`
	VariableWeight      *bool    `json:"variableWeight"`
	AllowedForStores    *bool    `json:"allowedForStores"`
	AllowedForCustomers *bool    `json:"allowedForCustomers"`
	IsActive            *bool    `json:"isActive"`
}

func CategoryFromModel(m *models.Category) *CategoryDTO {
	if m == nil {
		return nil
	}
	return &CategoryDTO{ID: m.ID, Name: m.Name, CreatedAt: m.CreatedAt}
}

func ItemFromModel(m *models.Item) ItemDTO {
	return ItemDTO{
		ID:         m.ID,
		Name:       m.Name,
		Unit:       m.Unit,
		IsActive:   m.IsActive,
		CategoryID: m.CategoryID,
		Category:   CategoryFromModel(m.Category),
		CreatedAt:  m.CreatedAt,
	}
}

func PackagingFromModel(m *models.PackagingOption) PackagingDTO {
	return PackagingDTO{
		ID:                  m.ID,
		Name:                m.Name,
		Type:                m.Type,
		SizeValue:           m.SizeValue,
		SizeUnit:            m.SizeUnit,
		VariableWeight:      m.VariableWeight,
		AllowedForStores:    m.AllowedForStores,
		AllowedForCustomers: m.AllowedForCustomers,
		IsActive:            m.IsActive,
	}
}
