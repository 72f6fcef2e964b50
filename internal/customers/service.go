package customers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/JGP1992/theitaliancorner-sub001/internal/audit"
	"github.com/JGP1992/theitaliancorner-sub001/pkg/db/models"
	"github.com/JGP1992/theitaliancorner-sub001/pkg/enums"
	pkgerrors "github.com/JGP1992/theitaliancorner-sub001/pkg/errors"
	"github.com/JGP1992/theitaliancorner-sub001/pkg/types"
)

type customerRepository interface {
	List(ctx context.Context, query string, includeInactive bool) ([]models.Customer, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Customer, error)
	Create(ctx context.Context, customer *models.Customer) error
	Save(ctx context.Context, customer *models.Customer) error
}

type auditRecorder interface {
	Record(ctx context.Context, entry audit.Entry)
}

type Service interface {
	List(ctx context.Context, query string, includeInactive bool) ([]CustomerDTO, error)
	Create(ctx context.Context, actorID uuid.UUID, input CreateCustomerInput) (*CustomerDTO, error)
	Update(ctx context.Context, actorID, id uuid.UUID, input UpdateCustomerInput) (*CustomerDTO, error)
}

type service struct {
	repo  customerRepository
	audit auditRecorder
}

func NewService(repo customerRepository, recorder auditRecorder) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("customer repository required")
	}
	if recorder == nil {
		return nil, fmt.Errorf("audit recorder required")
	}
	return &service{repo: repo, audit: recorder}, nil
}

func (s *service) List(ctx context.Context, query string, includeInactive bool) ([]CustomerDTO, error) {
	rows, err := s.repo.List(ctx, query, includeInactive)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list customers")
	}
	out := make([]CustomerDTO, 0, len(rows))
	for i := range rows {
		out = append(out, FromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) Create(ctx context.Context, actorID uuid.UUID, input CreateCustomerInput) (*CustomerDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	customer := &models.Customer{
		Name:     name,
		Email:    normalizeEmail(input.Email),
		Phone:    clean(input.Phone),
		Address:  clean(input.Address),
		IsActive: true,
	}
	if err := s.repo.Create(ctx, customer); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create customer")
	}
	s.record(ctx, actorID, enums.AuditActionCustomerCreated, customer)
	dto := FromModel(customer)
	return &dto, nil
}

func (s *service) Update(ctx context.Context, actorID, id uuid.UUID, input UpdateCustomerInput) (*CustomerDTO, error) {
	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NotFound("customer")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load customer")
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		customer.Name = name
	}
	applyNullable(&customer.Email, input.Email, normalizeEmail)
	applyNullable(&customer.Phone, input.Phone, clean)
	applyNullable(&customer.Address, input.Address, clean)
	if input.IsActive != nil {
		customer.IsActive = *input.IsActive
	}

	if err := s.repo.Save(ctx, customer); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update customer")
	}
	s.record(ctx, actorID, enums.AuditActionCustomerUpdated, customer)
	dto := FromModel(customer)
	return &dto, nil
}

func (s *service) record(ctx context.Context, actorID uuid.UUID, action string, customer *models.Customer) {
	s.audit.Record(ctx, audit.Entry{
		ActorID:    audit.Ref(actorID),
		Action:     action,
		EntityType: "customer",
		EntityID:   audit.Ref(customer.ID),
		Details:    map[string]any{"name": customer.Name, "isActive": customer.IsActive},
	})
}

func applyNullable(dst **string, in types.NullableString, norm func(*string) *string) {
	if !in.Valid {
		return
	}
	*dst = norm(in.Value)
}

func normalizeEmail(v *string) *string {
	out := clean(v)
	if out != nil {
		lower := strings.ToLower(*out)
		out = &lower
	}
	return out
}

func clean(v *string) *string {
	if v == nil {
		return nil
	}
	out := strings.TrimSpace(*v)
	if out == "" {
		return nil
	}
	return &out
}
