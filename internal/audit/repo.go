package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/JGP1992/theitaliancorner-sub001/internal/repo"
	"github.com/JGP1992/theitaliancorner-sub001/pkg/db/models"
	"github.com/JGP1992/theitaliancorner-sub001/pkg/pagination"
)

// ListFilter narrows audit queries.
type ListFilter struct {
	EntityType string
	EntityID   *uuid.UUID
	Action     string
}

// Repository persists audit entries.
type Repository struct {
	repo.Base
}

// NewRepository builds an audit repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

func (r *Repository) Create(ctx context.Context, entry *models.AuditLog) error {
	return r.DB(ctx).Create(entry).Error
}

// List returns up to limit+1 rows older than the cursor, newest first.
func (r *Repository) List(ctx context.Context, filter ListFilter, cursor *pagination.Cursor, limit int) ([]models.AuditLog, error) {
	query := r.DB(ctx).Model(&models.AuditLog{})
	if filter.EntityType != "" {
		query = query.Where("entity_type = ?", filter.EntityType)
	}
	if filter.EntityID != nil {
		query = query.Where("entity_id = ?", *filter.EntityID)
	}
	if filter.Action != "" {
		query = query.Where("action = ?", filter.Action)
	}
	if cursor != nil {
		query = query.Where("(created_at < ?) OR (created_at = ? AND id < ?)", cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
	}

	var rows []models.AuditLog
	err := query.
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit + 1).
		Find(&rows).Error
	return rows, err
}

// DeleteOlderThan removes entries created before cutoff and reports how many went.
func (r *Repository) DeleteOlderThan(ctx context.Context, tx *gorm.DB, cutoff time.Time) (int64, error) {
	res := r.Conn(ctx, tx).Where("created_at < ?", cutoff).Delete(&models.AuditLog{})
	return res.RowsAffected, res.Error
}
