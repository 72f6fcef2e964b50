package productiontasks

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

// ListFilter narrows task listings. Day bounds are inclusive.
type ListFilter struct {
	From         *time.Time
	To           *time.Time
	Status       *enums.ProductionTaskStatus
	AssignedToID *uuid.UUID
}

// Repository persists production tasks.
type Repository struct {
	repo.Base
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.ProductionTask, error) {
	var task models.ProductionTask
	err := r.DB(ctx).
		Preload("Item.Category").
		Preload("PackagingOption").
		Where("id = ?", id).
		First(&task).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *Repository) List(ctx context.Context, filter ListFilter) ([]models.ProductionTask, error) {
	query := r.DB(ctx).
		Preload("Item.Category").
		Preload("PackagingOption")
	if filter.From != nil {
		query = query.Where("date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("date <= ?", *filter.To)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.AssignedToID != nil {
		query = query.Where("assigned_to_user_id = ?", *filter.AssignedToID)
	}

	var tasks []models.ProductionTask
	err := query.
		Order("date ASC").
		Order("created_at ASC").
		Find(&tasks).Error
	return tasks, err
}

func (r *Repository) Create(ctx context.Context, task *models.ProductionTask) error {
	return r.DB(ctx).Omit(clause.Associations).Create(task).Error
}

// Save writes every column of task; associations are left untouched.
func (r *Repository) Save(ctx context.Context, task *models.ProductionTask) error {
	return r.DB(ctx).Omit(clause.Associations).Save(task).Error
}

func (r *Repository) FindItem(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	var item models.Item
	if err := r.DB(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *Repository) UserExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.exists(ctx, &models.User{}, id)
}

func (r *Repository) PackagingExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.exists(ctx, &models.PackagingOption{}, id)
}

func (r *Repository) exists(ctx context.Context, model any, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.DB(ctx).Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
