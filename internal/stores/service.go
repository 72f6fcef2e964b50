package stores

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/JGP1992/theitaliancorner-sub001/internal/audit"
	"github.com/JGP1992/theitaliancorner-sub001/pkg/db"
	"github.com/JGP1992/theitaliancorner-sub001/pkg/db/models"
	"github.com/JGP1992/theitaliancorner-sub001/pkg/enums"
	pkgerrors "github.com/JGP1992/theitaliancorner-sub001/pkg/errors"
)

const entityStoreInventory = "store_inventory"

type storeRepository interface {
	List(ctx context.Context, includeInactive bool) ([]models.Store, error)
	Create(ctx context.Context, store *models.Store) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Store, error)
	FindFactory(ctx context.Context) (*models.Store, error)
	Update(ctx context.Context, store *models.Store) error
	ItemExists(ctx context.Context, id uuid.UUID) (bool, error)
	ListTargets(ctx context.Context, storeID uuid.UUID) ([]models.StoreInventory, error)
	UpsertTarget(ctx context.Context, row *models.StoreInventory) (*models.StoreInventory, error)
}

type auditRecorder interface {
	Record(ctx context.Context, entry audit.Entry)
}

// Service exposes store and inventory target operations.
type Service interface {
	List(ctx context.Context, includeInactive bool) ([]StoreDTO, error)
	GetByID(ctx context.Context, id uuid.UUID) (*StoreDTO, error)
	Create(ctx context.Context, actorID uuid.UUID, input CreateStoreInput) (*StoreDTO, error)
	Update(ctx context.Context, actorID, storeID uuid.UUID, input UpdateStoreInput) (*StoreDTO, error)
	ListTargets(ctx context.Context, storeID uuid.UUID) ([]TargetDTO, error)
	UpsertTarget(ctx context.Context, actorID, storeID uuid.UUID, input UpsertTargetInput) (*TargetDTO, error)
}

type service struct {
	repo  storeRepository
	audit auditRecorder
}

// NewService builds a store service with the provided repository.
func NewService(repo storeRepository, recorder auditRecorder) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("store repository required")
	}
	if recorder == nil {
		return nil, fmt.Errorf("audit recorder required")
	}
	return &service{repo: repo, audit: recorder}, nil
}

func (s *service) List(ctx context.Context, includeInactive bool) ([]StoreDTO, error) {
	rows, err := s.repo.List(ctx, includeInactive)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list stores")
	}
	out := make([]StoreDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*StoreDTO, error) {
	store, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(store), nil
}

func (s *service) Create(ctx context.Context, actorID uuid.UUID, input CreateStoreInput) (*StoreDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if input.IsFactory {
		if err := s.ensureNoOtherFactory(ctx, uuid.Nil); err != nil {
			return nil, err
		}
	}

	store := &models.Store{
		Name:      name,
		Address:   trimmed(input.Address),
		IsFactory: input.IsFactory,
		IsActive:  true,
	}
	if err := s.repo.Create(ctx, store); err != nil {
		return nil, storeWriteError(err, "create store")
	}
	s.recordStore(ctx, actorID, store, enums.AuditActionStoreCreated)
	return FromModel(store), nil
}

func (s *service) Update(ctx context.Context, actorID, storeID uuid.UUID, input UpdateStoreInput) (*StoreDTO, error) {
	store, err := s.load(ctx, storeID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		store.Name = name
	}
	if input.Address.Valid {
		store.Address = trimmed(input.Address.Value)
	}
	if input.IsFactory != nil {
		if *input.IsFactory && !store.IsFactory {
			if err := s.ensureNoOtherFactory(ctx, store.ID); err != nil {
				return nil, err
			}
		}
		store.IsFactory = *input.IsFactory
	}
	if input.IsActive != nil {
		store.IsActive = *input.IsActive
	}

	if err := s.repo.Update(ctx, store); err != nil {
		return nil, storeWriteError(err, "update store")
	}
	s.recordStore(ctx, actorID, store, enums.AuditActionStoreUpdated)
	return FromModel(store), nil
}

func (s *service) ListTargets(ctx context.Context, storeID uuid.UUID) ([]TargetDTO, error) {
	if _, err := s.load(ctx, storeID); err != nil {
		return nil, err
	}
	rows, err := s.repo.ListTargets(ctx, storeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list inventory targets")
	}
	out := make([]TargetDTO, 0, len(rows))
	for i := range rows {
		out = append(out, TargetFromModel(&rows[i]))
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].ItemName < out[j].ItemName
	})
	return out, nil
}

func (s *service) UpsertTarget(ctx context.Context, actorID, storeID uuid.UUID, input UpsertTargetInput) (*TargetDTO, error) {
	if err := validateQuantity("targetQuantity", input.TargetQuantity); err != nil {
		return nil, err
	}
	if err := validateQuantity("minQuantity", input.MinQuantity); err != nil {
		return nil, err
	}
	if _, err := s.load(ctx, storeID); err != nil {
		return nil, err
	}
	exists, err := s.repo.ItemExists(ctx, input.ItemID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check item")
	}
	if !exists {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item does not exist")
	}

	row, err := s.repo.UpsertTarget(ctx, &models.StoreInventory{
		StoreID:        storeID,
		ItemID:         input.ItemID,
		TargetQuantity: input.TargetQuantity,
		MinQuantity:    input.MinQuantity,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "upsert inventory target")
	}

	s.audit.Record(ctx, audit.Entry{
		ActorID:    audit.Ref(actorID),
		Action:     enums.AuditActionInventoryTargetUpserted,
		EntityType: entityStoreInventory,
		EntityID:   audit.Ref(row.ID),
		Details: map[string]any{
			"storeId":        storeID,
			"itemId":         input.ItemID,
			"targetQuantity": input.TargetQuantity,
			"minQuantity":    input.MinQuantity,
		},
	})
	dto := TargetFromModel(row)
	return &dto, nil
}

func (s *service) load(ctx context.Context, id uuid.UUID) (*models.Store, error) {
	store, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NotFound("store")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load store")
	}
	return store, nil
}

func (s *service) ensureNoOtherFactory(ctx context.Context, self uuid.UUID) error {
	existing, err := s.repo.FindFactory(ctx)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil
	case err != nil:
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load factory store")
	case existing.ID != self:
		return pkgerrors.Newf(pkgerrors.CodeConflict, "%s is already the factory store", existing.Name)
	}
	return nil
}

func (s *service) recordStore(ctx context.Context, actorID uuid.UUID, store *models.Store, action string) {
	s.audit.Record(ctx, audit.Entry{
		ActorID:    audit.Ref(actorID),
		Action:     action,
		EntityType: "store",
		EntityID:   audit.Ref(store.ID),
		Details:    map[string]any{"name": store.Name, "isFactory": store.IsFactory, "isActive": store.IsActive},
	})
}

func validateQuantity(field string, v *float64) error {
	if v == nil {
		return nil
	}
	if math.IsNaN(*v) || math.IsInf(*v, 0) || *v < 0 {
		return pkgerrors.Newf(pkgerrors.CodeValidation, "%s must be a non-negative number", field)
	}
	return nil
}

func storeWriteError(err error, msg string) error {
	if db.IsUniqueViolation(err, "") {
		return pkgerrors.New(pkgerrors.CodeConflict, "store name already exists")
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, msg)
}

func trimmed(v *string) *string {
	if v == nil {
		return nil
	}
	out := strings.TrimSpace(*v)
	if out == "" {
		return nil
	}
	return &out
}
