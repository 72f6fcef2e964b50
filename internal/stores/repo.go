package stores

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/JGP1992/theitaliancorner-sub001/pkg/db/models"
)

// Repository handles store and store inventory persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to store operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns stores ordered by name.
func (r *Repository) List(ctx context.Context, includeInactive bool) ([]models.Store, error) {
	var stores []models.Store
	q := r.db.WithContext(ctx).Order("name ASC")
	if !includeInactive {
		q = q.Where("is_active = ?", true)
	}
	if err := q.Find(&stores).Error; err != nil {
		return nil, err
	}
	return stores, nil
}

// Create persists a new store row.
func (r *Repository) Create(ctx context.Context, store *models.Store) error {
	return r.db.WithContext(ctx).Create(store).Error
}

// FindByID loads a store by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Store, error) {
	var store models.Store
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&store).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

// FindFactory returns the store flagged as the production factory.
func (r *Repository) FindFactory(ctx context.Context) (*models.Store, error) {
	var store models.Store
	if err := r.db.WithContext(ctx).Where("is_factory = ?", true).First(&store).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

// Update saves the provided store.
func (r *Repository) Update(ctx context.Context, store *models.Store) error {
	if store == nil {
		return fmt.Errorf("store is required")
	}
	return r.db.WithContext(ctx).Save(store).Error
}

func (r *Repository) ItemExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Item{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// ListTargets returns a store's inventory targets with their catalog items.
func (r *Repository) ListTargets(ctx context.Context, storeID uuid.UUID) ([]models.StoreInventory, error) {
	var rows []models.StoreInventory
	err := r.db.WithContext(ctx).
		Preload("Item.Category").
		Where("store_id = ?", storeID).
		Find(&rows).Error
	return rows, err
}

// UpsertTarget inserts or overwrites the (store, item) target row.
func (r *Repository) UpsertTarget(ctx context.Context, row *models.StoreInventory) (*models.StoreInventory, error) {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "store_id"}, {Name: "item_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"target_quantity", "min_quantity", "updated_at"}),
	}).Create(row).Error
	if err != nil {
		return nil, err
	}

	var stored models.StoreInventory
	if err := r.db.WithContext(ctx).
		Preload("Item.Category").
		Where("store_id = ? AND item_id = ?", row.StoreID, row.ItemID).
		First(&stored).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}
