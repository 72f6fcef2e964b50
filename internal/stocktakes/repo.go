package stocktakes

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/JGP1992/theitaliancorner-sub001/internal/repo"
	"github.com/JGP1992/theitaliancorner-sub001/pkg/db/models"
)

// Repository persists stocktakes and their lines.
type Repository struct {
	repo.Base
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// Create inserts the stocktake and its lines using tx when provided.
func (r *Repository) Create(ctx context.Context, tx *gorm.DB, stocktake *models.Stocktake) error {
	return r.Conn(ctx, tx).Omit("Store").Create(stocktake).Error
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Stocktake, error) {
	var stocktake models.Stocktake
	err := r.withLines(r.DB(ctx)).First(&stocktake, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &stocktake, nil
}

// ListByStore returns a store's stocktakes, newest first.
func (r *Repository) ListByStore(ctx context.Context, storeID uuid.UUID, limit int) ([]models.Stocktake, error) {
	var rows []models.Stocktake
	err := r.withLines(r.DB(ctx)).
		Where("store_id = ?", storeID).
		Order("date DESC").
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

// Latest returns the newest stocktake for a store, optionally masters only.
func (r *Repository) Latest(ctx context.Context, storeID uuid.UUID, masterOnly bool) (*models.Stocktake, error) {
	q := r.withLines(r.DB(ctx)).Where("store_id = ?", storeID)
	if masterOnly {
		q = q.Where("is_master = ?", true)
	}
	var stocktake models.Stocktake
	if err := q.Order("date DESC").Order("created_at DESC").First(&stocktake).Error; err != nil {
		return nil, err
	}
	return &stocktake, nil
}

func (r *Repository) FindStore(ctx context.Context, id uuid.UUID) (*models.Store, error) {
	var store models.Store
	if err := r.DB(ctx).First(&store, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

// CountItems returns how many of ids exist in the catalog.
func (r *Repository) CountItems(ctx context.Context, ids []uuid.UUID) (int64, error) {
	var count int64
	err := r.DB(ctx).Model(&models.Item{}).Where("id IN ?", ids).Count(&count).Error
	return count, err
}

func (r *Repository) withLines(q *gorm.DB) *gorm.DB {
	return q.Preload("Store").Preload("Items.Item.Category")
}
