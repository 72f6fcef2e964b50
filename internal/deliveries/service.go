package deliveries

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/JGP1992/theitaliancorner-sub001/internal/audit"
	"github.com/JGP1992/theitaliancorner-sub001/pkg/dates"
	"github.com/JGP1992/theitaliancorner-sub001/pkg/db/models"
	"github.com/JGP1992/theitaliancorner-sub001/pkg/enums"
	pkgerrors "github.com/JGP1992/theitaliancorner-sub001/pkg/errors"
	"github.com/JGP1992/theitaliancorner-sub001/pkg/logger"
)

const (
	entityPlan = "delivery_plan"
	entityItem = "delivery_item"
)

// Service exposes delivery plan operations.
type Service interface {
	Create(ctx context.Context, actorID uuid.UUID, input CreatePlanInput) (*PlanDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*PlanDTO, error)
	List(ctx context.Context, input ListInput) ([]PlanDTO, error)
	Delete(ctx context.Context, actorID, id uuid.UUID) error
	ReplaceItems(ctx context.Context, actorID, planID uuid.UUID, input ReplaceItemsInput) (*PlanDTO, error)
	Transition(ctx context.Context, actorID, planID uuid.UUID, status string) (*PlanDTO, error)
	SetItemWeight(ctx context.Context, actorID, itemID uuid.UUID, weightKg *float64) (*ItemDTO, error)
}

// ServiceParams wires the delivery service.
type ServiceParams struct {
	Repo   Repository
	Tx     txRunner
	Audit  auditRecorder
	Logger *logger.Logger
}

type service struct {
	repo  Repository
	tx    txRunner
	audit auditRecorder
	logg  *logger.Logger
}

// NewService builds a delivery service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("deliveries repository required")
	}
	if params.Tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if params.Audit == nil {
		return nil, fmt.Errorf("audit recorder required")
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{
		repo:  params.Repo,
		tx:    params.Tx,
		audit: params.Audit,
		logg:  logg,
	}, nil
}

func (s *service) Transition(ctx context.Context, actorID, planID uuid.UUID, raw string) (*PlanDTO, error) {
	target, err := parseStatus(raw)
	if err != nil {
		return nil, err
	}

	var previous enums.DeliveryStatus
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		plan, err := repo.FindPlanForUpdate(ctx, planID)
		if err != nil {
			return planLoadError(err)
		}
		previous = plan.Status
		if err := CheckTransition(plan, target); err != nil {
			return err
		}
		if err := repo.UpdatePlanStatus(ctx, planID, target); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update delivery status")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	plan, err := s.repo.FindPlan(ctx, planID)
	if err != nil {
		return nil, planLoadError(err)
	}

	logCtx := s.logg.WithFields(ctx, map[string]any{
		"plan_id":     planID.String(),
		"status_from": previous.String(),
		"status_to":   target.String(),
	})
	s.logg.Info(logCtx, "delivery_plan.status_changed")
	s.audit.Record(ctx, audit.Entry{
		ActorID:    audit.Ref(actorID),
		Action:     enums.AuditActionDeliveryStatusChanged,
		EntityType: entityPlan,
		EntityID:   audit.Ref(planID),
		Details:    map[string]any{"from": previous.String(), "to": target.String()},
	})
	return FromModel(plan), nil
}

func (s *service) SetItemWeight(ctx context.Context, actorID, itemID uuid.UUID, weightKg *float64) (*ItemDTO, error) {
	if err := validateWeight(weightKg); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateItemWeight(ctx, itemID, weightKg); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NotFound("delivery item")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update delivery item weight")
	}

	item, err := s.repo.FindItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NotFound("delivery item")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load delivery item")
	}

	s.audit.Record(ctx, audit.Entry{
		ActorID:    audit.Ref(actorID),
		Action:     enums.AuditActionDeliveryItemWeightSet,
		EntityType: entityItem,
		EntityID:   audit.Ref(itemID),
		Details:    map[string]any{"planId": item.PlanID.String(), "weightKg": weightKg},
	})
	dto := ItemFromModel(item)
	return &dto, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*PlanDTO, error) {
	plan, err := s.repo.FindPlan(ctx, id)
	if err != nil {
		return nil, planLoadError(err)
	}
	return FromModel(plan), nil
}

func (s *service) List(ctx context.Context, input ListInput) ([]PlanDTO, error) {
	filter := ListFilter{StoreID: input.StoreID}
	if strings.TrimSpace(input.From) != "" {
		from, err := dates.ParseDay(input.From)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid from date")
		}
		filter.From = &from
	}
	if strings.TrimSpace(input.To) != "" {
		to, err := dates.ParseDay(input.To)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid to date")
		}
		filter.To = &to
	}
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "to must not be before from")
	}
	if strings.TrimSpace(input.Status) != "" {
		status, err := parseStatus(input.Status)
		if err != nil {
			return nil, err
		}
		filter.Status = &status
	}

	plans, err := s.repo.ListPlans(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list delivery plans")
	}
	out := make([]PlanDTO, 0, len(plans))
	for i := range plans {
		out = append(out, *FromModel(&plans[i]))
	}
	return out, nil
}

func (s *service) Create(ctx context.Context, actorID uuid.UUID, input CreatePlanInput) (*PlanDTO, error) {
	day, err := dates.ParseDay(input.Date)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid date")
	}
	status := enums.DeliveryStatusDraft
	if strings.TrimSpace(input.Status) != "" {
		if status, err = parseStatus(input.Status); err != nil {
			return nil, err
		}
		if status == enums.DeliveryStatusSent {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "plans cannot be created as SENT")
		}
	}
	if input.StoreID != nil && len(input.CustomerIDs) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "a plan targets either a store or customers, not both")
	}

	plan := &models.DeliveryPlan{
		Date:        day,
		Status:      status,
		Notes:       input.Notes,
		StoreID:     input.StoreID,
		CreatedByID: audit.Ref(actorID),
	}
	if input.StoreID != nil {
		if _, err := s.repo.FindStore(ctx, *input.StoreID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, "store does not exist")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load store")
		}
	}
	if len(input.CustomerIDs) > 0 {
		customers, err := s.repo.FindCustomers(ctx, uniqueIDs(input.CustomerIDs))
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load customers")
		}
		if len(customers) != len(uniqueIDs(input.CustomerIDs)) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "one or more customers do not exist")
		}
		plan.Customers = customers
	}

	items, err := s.buildItems(ctx, plan, input.Items)
	if err != nil {
		return nil, err
	}
	plan.Items = items

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).CreatePlan(ctx, plan)
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create delivery plan")
	}

	s.audit.Record(ctx, audit.Entry{
		ActorID:    audit.Ref(actorID),
		Action:     enums.AuditActionDeliveryCreated,
		EntityType: entityPlan,
		EntityID:   audit.Ref(plan.ID),
		Details:    map[string]any{"date": dates.Format(day), "items": len(items)},
	})
	return s.Get(ctx, plan.ID)
}

func (s *service) ReplaceItems(ctx context.Context, actorID, planID uuid.UUID, input ReplaceItemsInput) (*PlanDTO, error) {
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		plan, err := repo.FindPlan(ctx, planID)
		if err != nil {
			return planLoadError(err)
		}
		if plan.Status == enums.DeliveryStatusSent {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "items of a SENT plan cannot be changed")
		}
		items, err := s.buildItems(ctx, plan, input.Items)
		if err != nil {
			return err
		}
		if err := repo.ReplaceItems(ctx, planID, items); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "replace delivery items")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, audit.Entry{
		ActorID:    audit.Ref(actorID),
		Action:     enums.AuditActionDeliveryItemsReplaced,
		EntityType: entityPlan,
		EntityID:   audit.Ref(planID),
		Details:    map[string]any{"items": len(input.Items)},
	})
	return s.Get(ctx, planID)
}

func (s *service) Delete(ctx context.Context, actorID, id uuid.UUID) error {
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).DeletePlan(ctx, id)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.NotFound("delivery plan")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete delivery plan")
	}
	s.audit.Record(ctx, audit.Entry{
		ActorID:    audit.Ref(actorID),
		Action:     enums.AuditActionDeliveryDeleted,
		EntityType: entityPlan,
		EntityID:   audit.Ref(id),
	})
	return nil
}

// buildItems validates lines against the catalog and the plan's destination.
func (s *service) buildItems(ctx context.Context, plan *models.DeliveryPlan, inputs []ItemInput) ([]models.DeliveryItem, error) {
	if len(inputs) == 0 {
		return nil, nil
	}

	itemIDs := make([]uuid.UUID, 0, len(inputs))
	packagingIDs := make([]uuid.UUID, 0, len(inputs))
	for i, in := range inputs {
		if in.ItemID == uuid.Nil {
			return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "items[%d].itemId is required", i)
		}
		if in.Quantity <= 0 {
			return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "items[%d].quantity must be positive", i)
		}
		if err := validateWeight(in.WeightKg); err != nil {
			return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "items[%d].weightKg must be a positive number", i)
		}
		itemIDs = append(itemIDs, in.ItemID)
		if in.PackagingOptionID != nil {
			packagingIDs = append(packagingIDs, *in.PackagingOptionID)
		}
	}

	itemIDs = uniqueIDs(itemIDs)
	count, err := s.repo.CountItems(ctx, itemIDs)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load catalog items")
	}
	if int(count) != len(itemIDs) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "one or more items do not exist")
	}

	packagingIDs = uniqueIDs(packagingIDs)
	options, err := s.repo.FindPackagingOptions(ctx, packagingIDs)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load packaging options")
	}
	byID := make(map[uuid.UUID]models.PackagingOption, len(options))
	for _, o := range options {
		byID[o.ID] = o
	}

	toStore := plan.StoreID != nil
	toCustomers := len(plan.Customers) > 0
	items := make([]models.DeliveryItem, 0, len(inputs))
	for i, in := range inputs {
		if in.PackagingOptionID != nil {
			option, ok := byID[*in.PackagingOptionID]
			if !ok {
				return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "items[%d].packagingOptionId does not exist", i)
			}
			if toStore && !option.AllowedForStores {
				return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "packaging %q is not allowed for store deliveries", option.Name)
			}
			if toCustomers && !option.AllowedForCustomers {
				return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "packaging %q is not allowed for customer deliveries", option.Name)
			}
		}
		items = append(items, in.ToModel())
	}
	return items, nil
}

func planLoadError(err error) error {
	if pkgerrors.As(err) != nil {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.NotFound("delivery plan")
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load delivery plan")
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
