package deliveries

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/JGP1992/theitaliancorner-sub001/internal/audit"
	"github.com/JGP1992/theitaliancorner-sub001/pkg/db/models"
	"github.com/JGP1992/theitaliancorner-sub001/pkg/enums"
)

// Repository defines persistence operations for delivery plans and their items.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindPlan(ctx context.Context, id uuid.UUID) (*models.DeliveryPlan, error)
	FindPlanForUpdate(ctx context.Context, id uuid.UUID) (*models.DeliveryPlan, error)
	ListPlans(ctx context.Context, filter ListFilter) ([]models.DeliveryPlan, error)
	CreatePlan(ctx context.Context, plan *models.DeliveryPlan) error
	UpdatePlanStatus(ctx context.Context, id uuid.UUID, status enums.DeliveryStatus) error
	DeletePlan(ctx context.Context, id uuid.UUID) error
	ReplaceItems(ctx context.Context, planID uuid.UUID, items []models.DeliveryItem) error
	FindItem(ctx context.Context, id uuid.UUID) (*models.DeliveryItem, error)
	UpdateItemWeight(ctx context.Context, id uuid.UUID, weightKg *float64) error

	FindStore(ctx context.Context, id uuid.UUID) (*models.Store, error)
	FindCustomers(ctx context.Context, ids []uuid.UUID) ([]models.Customer, error)
	FindPackagingOptions(ctx context.Context, ids []uuid.UUID) ([]models.PackagingOption, error)
	CountItems(ctx context.Context, ids []uuid.UUID) (int64, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type auditRecorder interface {
	Record(ctx context.Context, entry audit.Entry)
}
