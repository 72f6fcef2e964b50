package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/JGP1992/theitaliancorner-sub001/internal/audit"
	"github.com/JGP1992/theitaliancorner-sub001/pkg/db"
	"github.com/JGP1992/theitaliancorner-sub001/pkg/db/models"
	"github.com/JGP1992/theitaliancorner-sub001/pkg/enums"
	pkgerrors "github.com/JGP1992/theitaliancorner-sub001/pkg/errors"
)

type catalogRepository interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	CreateCategory(ctx context.Context, category *models.Category) error
	FindCategory(ctx context.Context, id uuid.UUID) (*models.Category, error)
	ListItems(ctx context.Context, filters ItemListFilters) ([]models.Item, error)
	CreateItem(ctx context.Context, item *models.Item) error
	ListPackaging(ctx context.Context, includeInactive bool) ([]models.PackagingOption, error)
	FindPackaging(ctx context.Context, id uuid.UUID) (*models.PackagingOption, error)
	CreatePackaging(ctx context.Context, option *models.PackagingOption) error
	SavePackaging(ctx context.Context, option *models.PackagingOption) error
}

type auditRecorder interface {
	Record(ctx context.Context, entry audit.Entry)
}

// Service manages the administrator-owned catalog.
type Service interface {
	ListCategories(ctx context.Context) ([]CategoryDTO, error)
	CreateCategory(ctx context.Context, actorID uuid.UUID, input CreateCategoryInput) (*CategoryDTO, error)
	ListItems(ctx context.Context, filters ItemListFilters) ([]ItemDTO, error)
	CreateItem(ctx context.Context, actorID uuid.UUID, input CreateItemInput) (*ItemDTO, error)
	ListPackaging(ctx context.Context, includeInactive bool) ([]PackagingDTO, error)
	CreatePackaging(ctx context.Context, actorID uuid.UUID, input CreatePackagingInput) (*PackagingDTO, error)
	UpdatePackaging(ctx context.Context, actorID, id uuid.UUID, input UpdatePackagingInput) (*PackagingDTO, error)
}

type service struct {
	repo  catalogRepository
	audit auditRecorder
}

func NewService(repo catalogRepository, recorder auditRecorder) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if recorder == nil {
		return nil, fmt.Errorf("audit recorder required")
	}
	return &service{repo: repo, audit: recorder}, nil
}

func (s *service) ListCategories(ctx context.Context) ([]CategoryDTO, error) {
	rows, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list categories")
	}
	out := make([]CategoryDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *CategoryFromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) CreateCategory(ctx context.Context, actorID uuid.UUID, input CreateCategoryInput) (*CategoryDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	category := &models.Category{Name: name}
	if err := s.repo.CreateCategory(ctx, category); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.Newf(pkgerrors.CodeConflict, "category %q already exists", name)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create category")
	}
	s.record(ctx, actorID, enums.AuditActionCategoryCreated, "category", category.ID, map[string]any{"name": name})
	return CategoryFromModel(category), nil
}

func (s *service) ListItems(ctx context.Context, filters ItemListFilters) ([]ItemDTO, error) {
	rows, err := s.repo.ListItems(ctx, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list items")
	}
	out := make([]ItemDTO, 0, len(rows))
	for i := range rows {
		out = append(out, ItemFromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) CreateItem(ctx context.Context, actorID uuid.UUID, input CreateItemInput) (*ItemDTO, error) {
	name := strings.TrimSpace(input.Name)
	unit := strings.TrimSpace(input.Unit)
	if name == "" || unit == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name and unit are required")
	}
	category, err := s.repo.FindCategory(ctx, input.CategoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "category does not exist")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load category")
	}

	item := &models.Item{Name: name, CategoryID: category.ID, Unit: unit, IsActive: true}
	if err := s.repo.CreateItem(ctx, item); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create item")
	}
	item.Category = category
	s.record(ctx, actorID, enums.AuditActionItemCreated, "item", item.ID, map[string]any{"name": name, "category": category.Name})
	dto := ItemFromModel(item)
	return &dto, nil
}

func (s *service) ListPackaging(ctx context.Context, includeInactive bool) ([]PackagingDTO, error) {
	rows, err := s.repo.ListPackaging(ctx, includeInactive)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list packaging options")
	}
	out := make([]PackagingDTO, 0, len(rows))
	for i := range rows {
		out = append(out, PackagingFromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) CreatePackaging(ctx context.Context, actorID uuid.UUID, input CreatePackagingInput) (*PackagingDTO, error) {
	name := strings.TrimSpace(input.Name)
	kind := strings.TrimSpace(input.Type)
	if name == "" || kind == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name and type are required")
	}
	option := &models.PackagingOption{
		Name:                name,
		Type:                kind,
		SizeValue:           input.SizeValue,
		SizeUnit:            input.SizeUnit,
		VariableWeight:      input.VariableWeight,
		AllowedForStores:    boolOr(input.AllowedForStores, true),
		AllowedForCustomers: boolOr(input.AllowedForCustomers, true),
		IsActive:            true,
	}
	if err := validatePackaging(option); err != nil {
		return nil, err
	}
	if err := s.repo.CreatePackaging(ctx, option); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create packaging option")
	}
	s.record(ctx, actorID, enums.AuditActionPackagingCreated, "packaging_option", option.ID, map[string]any{"name": name, "variableWeight": option.VariableWeight})
	dto := PackagingFromModel(option)
	return &dto, nil
}

func (s *service) UpdatePackaging(ctx context.Context, actorID, id uuid.UUID, input UpdatePackagingInput) (*PackagingDTO, error) {
	option, err := s.repo.FindPackaging(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NotFound("packaging option")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load packaging option")
	}

	if input.Name != nil {
		option.Name = strings.TrimSpace(*input.Name)
	}
	if input.SizeValue != nil {
		option.SizeValue = input.SizeValue
	}
	if input.SizeUnit != nil {
		option.SizeUnit = input.SizeUnit
	}
	if input.VariableWeight != nil {
		option.VariableWeight = *input.VariableWeight
	}
	if input.AllowedForStores != nil {
		option.AllowedForStores = *input.AllowedForStores
	}
	if input.AllowedForCustomers != nil {
		option.AllowedForCustomers = *input.AllowedForCustomers
	}
	if input.IsActive != nil {
		option.IsActive = *input.IsActive
	}
	if err := validatePackaging(option); err != nil {
		return nil, err
	}

	if err := s.repo.SavePackaging(ctx, option); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update packaging option")
	}
	s.record(ctx, actorID, enums.AuditActionPackagingUpdated, "packaging_option", option.ID, map[string]any{
		"name":                option.Name,
		"variableWeight":      option.VariableWeight,
		"allowedForStores":    option.AllowedForStores,
		"allowedForCustomers": option.AllowedForCustomers,
		"isActive":            option.IsActive,
	})
	dto := PackagingFromModel(option)
	return &dto, nil
}

func (s *service) record(ctx context.Context, actorID uuid.UUID, action, entity string, id uuid.UUID, details map[string]any) {
	s.audit.Record(ctx, audit.Entry{
		ActorID:    audit.Ref(actorID),
		Action:     action,
		EntityType: entity,
		EntityID:   audit.Ref(id),
		Details:    details,
	})
}

func validatePackaging(option *models.PackagingOption) error {
	if option.Name == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
	}
	if !option.AllowedForStores && !option.AllowedForCustomers {
		return pkgerrors.New(pkgerrors.CodeValidation, "packaging must be allowed for stores or customers")
	}
	return nil
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}
