package deliveries

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/JGP1992/theitaliancorner-sub001/internal/repo"
	"github.com/JGP1992/theitaliancorner-sub001/pkg/db/models"
	"github.com/JGP1992/theitaliancorner-sub001/pkg/enums"
)

// ListFilter narrows plan listings. Day bounds are inclusive.
type ListFilter struct {
	From    *time.Time
	To      *time.Time
	Status  *enums.DeliveryStatus
	StoreID *uuid.UUID
}

type repository struct {
	repo.Base
}

// NewRepository builds a deliveries repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{Base: repo.NewBase(db)}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{Base: r.Bind(tx)}
}

func withPlanGraph(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Store").
		Preload("Customers", func(db *gorm.DB) *gorm.DB {
			return db.Order("customers.name ASC")
		}).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("delivery_items.created_at ASC").Order("delivery_items.id ASC")
		}).
		Preload("Items.Item.Category").
		Preload("Items.PackagingOption")
}

func (r *repository) FindPlan(ctx context.Context, id uuid.UUID) (*models.DeliveryPlan, error) {
	var plan models.DeliveryPlan
	err := withPlanGraph(r.DB(ctx)).
		Where("id = ?", id).
		First(&plan).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// FindPlanForUpdate locks the plan row and its item rows before loading the
// plan graph. Locks are held until the surrounding transaction ends.
func (r *repository) FindPlanForUpdate(ctx context.Context, id uuid.UUID) (*models.DeliveryPlan, error) {
	conn := r.DB(ctx)
	var ids []uuid.UUID
	err := conn.Model(&models.DeliveryPlan{}).
		Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
		Where("id = ?", id).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	err = conn.Model(&models.DeliveryItem{}).
		Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
		Where("plan_id = ?", id).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return r.FindPlan(ctx, id)
}

func (r *repository) ListPlans(ctx context.Context, filter ListFilter) ([]models.DeliveryPlan, error) {
	query := withPlanGraph(r.DB(ctx)).Model(&models.DeliveryPlan{})
	if filter.From != nil {
		query = query.Where("date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("date <= ?", *filter.To)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.StoreID != nil {
		query = query.Where("store_id = ?", *filter.StoreID)
	}

	var plans []models.DeliveryPlan
	err := query.
		Order("date ASC").
		Order("created_at ASC").
		Find(&plans).Error
	return plans, err
}

func (r *repository) CreatePlan(ctx context.Context, plan *models.DeliveryPlan) error {
	return r.DB(ctx).Create(plan).Error
}

func (r *repository) UpdatePlanStatus(ctx context.Context, id uuid.UUID, status enums.DeliveryStatus) error {
	res := r.DB(ctx).
		Model(&models.DeliveryPlan{}).
		Where("id = ?", id).
		Update("status", status)
	return repo.Affected(res)
}

func (r *repository) DeletePlan(ctx context.Context, id uuid.UUID) error {
	res := r.DB(ctx).
		Select("Items", "Customers").
		Delete(&models.DeliveryPlan{ID: id})
	return repo.Affected(res)
}

func (r *repository) ReplaceItems(ctx context.Context, planID uuid.UUID, items []models.DeliveryItem) error {
	db := r.DB(ctx)
	if err := db.Where("plan_id = ?", planID).Delete(&models.DeliveryItem{}).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		items[i].PlanID = planID
	}
	return db.Create(&items).Error
}

func (r *repository) FindItem(ctx context.Context, id uuid.UUID) (*models.DeliveryItem, error) {
	var item models.DeliveryItem
	err := r.DB(ctx).
		Preload("Item.Category").
		Preload("PackagingOption").
		Where("id = ?", id).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repository) UpdateItemWeight(ctx context.Context, id uuid.UUID, weightKg *float64) error {
	var value any = gorm.Expr("NULL")
	if weightKg != nil {
		value = *weightKg
	}
	res := r.DB(ctx).
		Model(&models.DeliveryItem{}).
		Where("id = ?", id).
		Update("weight_kg", value)
	return repo.Affected(res)
}

func (r *repository) FindStore(ctx context.Context, id uuid.UUID) (*models.Store, error) {
	var store models.Store
	if err := r.DB(ctx).Where("id = ?", id).First(&store).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *repository) FindCustomers(ctx context.Context, ids []uuid.UUID) ([]models.Customer, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var customers []models.Customer
	err := r.DB(ctx).Where("id IN ?", ids).Find(&customers).Error
	return customers, err
}

func (r *repository) FindPackagingOptions(ctx context.Context, ids []uuid.UUID) ([]models.PackagingOption, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var options []models.PackagingOption
	err := r.DB(ctx).Where("id IN ?", ids).Find(&options).Error
	return options, err
}

func (r *repository) CountItems(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var count int64
	err := r.DB(ctx).Model(&models.Item{}).Where("id IN ?", ids).Count(&count).Error
	return count, err
}
