package stocktakes

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/JGP1992/theitaliancorner-sub001/internal/audit"
	"github.com/JGP1992/theitaliancorner-sub001/pkg/db/models"
	"github.com/JGP1992/theitaliancorner-sub001/pkg/enums"
	pkgerrors "github.com/JGP1992/theitaliancorner-sub001/pkg/errors"
	"github.com/JGP1992/theitaliancorner-sub001/pkg/pagination"
)

type stocktakeRepository interface {
	Create(ctx context.Context, tx *gorm.DB, stocktake *models.Stocktake) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Stocktake, error)
	ListByStore(ctx context.Context, storeID uuid.UUID, limit int) ([]models.Stocktake, error)
	Latest(ctx context.Context, storeID uuid.UUID, masterOnly bool) (*models.Stocktake, error)
	FindStore(ctx context.Context, id uuid.UUID) (*models.Store, error)
	CountItems(ctx context.Context, ids []uuid.UUID) (int64, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type auditRecorder interface {
	Record(ctx context.Context, entry audit.Entry)
}

// Service records and reads store inventory counts.
type Service interface {
	Submit(ctx context.Context, actorID uuid.UUID, input SubmitInput) (*StocktakeDTO, error)
	ListByStore(ctx context.Context, storeID uuid.UUID, limit int) ([]StocktakeDTO, error)
	Latest(ctx context.Context, storeID uuid.UUID) (*StocktakeDTO, error)
}

type ServiceParams struct {
	Repo  stocktakeRepository
	Tx    txRunner
	Audit auditRecorder
}

type service struct {
	repo  stocktakeRepository
	tx    txRunner
	audit auditRecorder
	now   func() time.Time
}

func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("stocktake repository required")
	}
	if params.Tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if params.Audit == nil {
		return nil, fmt.Errorf("audit recorder required")
	}
	return &service{
		repo:  params.Repo,
		tx:    params.Tx,
		audit: params.Audit,
		now:   func() time.Time { return time.Now().UTC() },
	}, nil
}

func (s *service) Submit(ctx context.Context, actorID uuid.UUID, input SubmitInput) (*StocktakeDTO, error) {
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one item is required")
	}
	store, err := s.loadStore(ctx, input.StoreID)
	if err != nil {
		return nil, err
	}
	if input.IsMaster && !store.IsFactory {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "only the factory store can submit a master stocktake")
	}

	lines := make([]models.StocktakeItem, 0, len(input.Items))
	ids := make([]uuid.UUID, 0, len(input.Items))
	seen := make(map[uuid.UUID]bool, len(input.Items))
	for i, line := range input.Items {
		if math.IsNaN(line.Quantity) || math.IsInf(line.Quantity, 0) || line.Quantity < 0 {
			return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "items[%d].quantity must be a non-negative number", i)
		}
		if seen[line.ItemID] {
			return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "items[%d] repeats an item", i)
		}
		seen[line.ItemID] = true
		ids = append(ids, line.ItemID)
		lines = append(lines, models.StocktakeItem{ItemID: line.ItemID, Quantity: line.Quantity})
	}
	found, err := s.repo.CountItems(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check items")
	}
	if found != int64(len(ids)) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "one or more items do not exist")
	}

	countedAt := s.now()
	if input.CountedAt != nil {
		countedAt = input.CountedAt.UTC()
	}
	stocktake := &models.Stocktake{
		StoreID:       store.ID,
		Date:          countedAt,
		IsMaster:      input.IsMaster,
		SubmittedByID: audit.Ref(actorID),
		Notes:         cleanNotes(input.Notes),
		Items:         lines,
	}
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.Create(ctx, tx, stocktake)
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create stocktake")
	}

	s.audit.Record(ctx, audit.Entry{
		ActorID:    audit.Ref(actorID),
		Action:     enums.AuditActionStocktakeSubmitted,
		EntityType: "stocktake",
		EntityID:   audit.Ref(stocktake.ID),
		Details:    map[string]any{"storeId": store.ID, "isMaster": input.IsMaster, "lines": len(lines)},
	})

	stored, err := s.repo.FindByID(ctx, stocktake.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reload stocktake")
	}
	return FromModel(stored), nil
}

func (s *service) ListByStore(ctx context.Context, storeID uuid.UUID, limit int) ([]StocktakeDTO, error) {
	if _, err := s.loadStore(ctx, storeID); err != nil {
		return nil, err
	}
	rows, err := s.repo.ListByStore(ctx, storeID, pagination.NormalizeLimit(limit))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list stocktakes")
	}
	out := make([]StocktakeDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out, nil
}

// Latest returns the count the production report would use for the store:
// the newest master for the factory when one exists, otherwise the newest.
func (s *service) Latest(ctx context.Context, storeID uuid.UUID) (*StocktakeDTO, error) {
	store, err := s.loadStore(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if store.IsFactory {
		master, err := s.repo.Latest(ctx, storeID, true)
		if err == nil {
			return FromModel(master), nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load master stocktake")
		}
	}
	latest, err := s.repo.Latest(ctx, storeID, false)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NotFound("stocktake")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load stocktake")
	}
	return FromModel(latest), nil
}

func (s *service) loadStore(ctx context.Context, id uuid.UUID) (*models.Store, error) {
	store, err := s.repo.FindStore(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NotFound("store")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load store")
	}
	return store, nil
}

func cleanNotes(v *string) *string {
	if v == nil {
		return nil
	}
	out := strings.TrimSpace(*v)
	if out == "" {
		return nil
	}
	return &out
}
