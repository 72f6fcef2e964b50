package customers

import (
	"time"

	"github.com/google/uuid"

	"github.com/JGP1992/theitaliancorner-sub001/pkg/db/models"
	"github.com/JGP1992/theitaliancorner-sub001/pkg/types"
)

// CustomerDTO exposes a direct delivery recipient.
type CustomerDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     *string   `json:"email,omitempty"`
	Phone     *string   `json:"phone,omitempty"`
	Address   *string   `json:"address,omitempty"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

type CreateCustomerInput struct {
	Name    string  `json:"name" validate:"notblank,max=120"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Phone   *string `json:"phone" validate:"omitempty,max=40"`
	Address *string `json:"address" validate:"omitempty,max=255"`
}

// UpdateCustomerInput patches contact details. Explicit nulls clear them.
type UpdateCustomerInput struct {
	Name     *string              `json:"name" validate:"omitempty,max=120"`
	Email    types.NullableString `json:"email"`
	Phone    types.NullableString `json:"phone"`
	Address  types.NullableString `json:"address"`
	IsActive *bool                `json:"isActive"`
}

func FromModel(m *models.Customer) CustomerDTO {
	return CustomerDTO{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Phone:     m.Phone,
		Address:   m.Address,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
	}
}
