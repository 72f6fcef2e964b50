package production

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/JGP1992/theitaliancorner-sub001/internal/repo"
	"github.com/JGP1992/theitaliancorner-sub001/pkg/db/models"
)

// Repository reads the inputs of the production report.
type Repository struct {
	repo.Base
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// PlansInRange returns plans dated within [fromDay, toDay], oldest first.
func (r *Repository) PlansInRange(ctx context.Context, fromDay, toDay time.Time) ([]models.DeliveryPlan, error) {
	var plans []models.DeliveryPlan
	err := r.DB(ctx).
		Preload("Store").
		Preload("Customers", func(db *gorm.DB) *gorm.DB {
			return db.Order("customers.name ASC")
		}).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("delivery_items.created_at ASC").Order("delivery_items.id ASC")
		}).
		Preload("Items.Item.Category").
		Where("date >= ? AND date <= ?", fromDay, toDay).
		Order("date ASC").
		Order("created_at ASC").
		Find(&plans).Error
	return plans, err
}

func (r *Repository) Stores(ctx context.Context) ([]models.Store, error) {
	var stores []models.Store
	err := r.DB(ctx).Order("name ASC").Find(&stores).Error
	return stores, err
}

// LatestStocktake returns the most recent stocktake of a store, optionally
// limited to master stocktakes. gorm.ErrRecordNotFound when none exists.
func (r *Repository) LatestStocktake(ctx context.Context, storeID uuid.UUID, masterOnly bool) (*models.Stocktake, error) {
	query := r.DB(ctx).
		Preload("Items.Item.Category").
		Where("store_id = ?", storeID)
	if masterOnly {
		query = query.Where("is_master = ?", true)
	}

	var stocktake models.Stocktake
	err := query.
		Order("date DESC").
		Order("created_at DESC").
		First(&stocktake).Error
	if err != nil {
		return nil, err
	}
	return &stocktake, nil
}

// InventoryTargets returns every store inventory row with a numeric target.
func (r *Repository) InventoryTargets(ctx context.Context) ([]models.StoreInventory, error) {
	var rows []models.StoreInventory
	err := r.DB(ctx).
		Preload("Item").
		Where("target_quantity IS NOT NULL").
		Find(&rows).Error
	return rows, err
}
