package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/JGP1992/theitaliancorner-sub001/pkg/db/models"
)

// Repository persists categories, items and packaging options.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) ListCategories(ctx context.Context) ([]models.Category, error) {
	var rows []models.Category
	err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error
	return rows, err
}

func (r *Repository) CreateCategory(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *Repository) FindCategory(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// ListItems returns items with their category, ordered by name.
func (r *Repository) ListItems(ctx context.Context, filters ItemListFilters) ([]models.Item, error) {
	q := r.db.WithContext(ctx).Preload("Category").Order("name ASC")
	if filters.CategoryID != nil {
		q = q.Where("category_id = ?", *filters.CategoryID)
	}
	if !filters.IncludeInactive {
		q = q.Where("is_active = ?", true)
	}
	if term := strings.ToLower(strings.TrimSpace(filters.Query)); term != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+term+"%")
	}
	var rows []models.Item
	err := q.Find(&rows).Error
	return rows, err
}

func (r *Repository) CreateItem(ctx context.Context, item *models.Item) error {
	return r.db.WithContext(ctx).Omit("Category").Create(item).Error
}

func (r *Repository) ListPackaging(ctx context.Context, includeInactive bool) ([]models.PackagingOption, error) {
	q := r.db.WithContext(ctx).Order("name ASC")
	if !includeInactive {
		q = q.Where("is_active = ?", true)
	}
	var rows []models.PackagingOption
	err := q.Find(&rows).Error
	return rows, err
}

func (r *Repository) FindPackaging(ctx context.Context, id uuid.UUID) (*models.PackagingOption, error) {
	var option models.PackagingOption
	if err := r.db.WithContext(ctx).First(&option, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &option, nil
}

func (r *Repository) CreatePackaging(ctx context.Context, option *models.PackagingOption) error {
	return r.db.WithContext(ctx).Create(option).Error
}

func (r *Repository) SavePackaging(ctx context.Context, option *models.PackagingOption) error {
	return r.db.WithContext(ctx).Save(option).Error
}
