package production

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/JGP1992/theitaliancorner-sub001/pkg/dates"
	"github.com/JGP1992/theitaliancorner-sub001/pkg/db/models"
	pkgerrors "github.com/JGP1992/theitaliancorner-sub001/pkg/errors"
)

const (
	DefaultDays = 7
	MinDays     = 1
	MaxDays     = 60
)

type reportRepository interface {
	PlansInRange(ctx context.Context, fromDay, toDay time.Time) ([]models.DeliveryPlan, error)
	Stores(ctx context.Context) ([]models.Store, error)
	LatestStocktake(ctx context.Context, storeID uuid.UUID, masterOnly bool) (*models.Stocktake, error)
	InventoryTargets(ctx context.Context) ([]models.StoreInventory, error)
}

// Service computes production requirements.
type Service interface {
	ComputePlan(ctx context.Context, windowStart, windowEnd time.Time) (*Report, error)
	PlanForDays(ctx context.Context, days int) (*Report, error)
	PlanForRange(ctx context.Context, from, to string) (*Report, error)
}

type service struct {
	repo reportRepository
	loc  *time.Location
	now  func() time.Time
}

// NewService builds the report service; loc sets the business day boundaries.
func NewService(repo reportRepository, loc *time.Location) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("production repository required")
	}
	if loc == nil {
		loc = time.UTC
	}
	return &service{repo: repo, loc: loc, now: time.Now}, nil
}

// ClampDays bounds a requested horizon to [MinDays, MaxDays].
func ClampDays(days int) int {
	if days < MinDays {
		return MinDays
	}
	if days > MaxDays {
		return MaxDays
	}
	return days
}

func (s *service) PlanForDays(ctx context.Context, days int) (*Report, error) {
	days = ClampDays(days)
	today := dates.DayOf(s.now(), s.loc)
	last := today.AddDate(0, 0, days-1)
	return s.ComputePlan(ctx, dates.StartOfDay(today, s.loc), dates.EndOfDay(last, s.loc))
}

func (s *service) PlanForRange(ctx context.Context, from, to string) (*Report, error) {
	if strings.TrimSpace(from) == "" || strings.TrimSpace(to) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "from and to are both required")
	}
	fromDay, err := dates.ParseDay(from)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid from date")
	}
	toDay, err := dates.ParseDay(to)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid to date")
	}
	return s.ComputePlan(ctx, dates.StartOfDay(fromDay, s.loc), dates.EndOfDay(toDay, s.loc))
}

func (s *service) ComputePlan(ctx context.Context, windowStart, windowEnd time.Time) (*Report, error) {
	if windowEnd.Before(windowStart) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "window end must not be before window start")
	}

	plans, err := s.repo.PlansInRange(ctx, dates.DayOf(windowStart, s.loc), dates.DayOf(windowEnd, s.loc))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load delivery plans")
	}
	snapshots, err := s.snapshots(ctx)
	if err != nil {
		return nil, err
	}
	targets, err := s.repo.InventoryTargets(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load inventory targets")
	}

	return Aggregate(Input{
		Plans:     plans,
		Snapshots: snapshots,
		Targets:   targets,
		Start:     windowStart,
		End:       windowEnd,
	}), nil
}

// snapshots picks one stocktake per store, preferring a master count for the factory.
func (s *service) snapshots(ctx context.Context) ([]Snapshot, error) {
	stores, err := s.repo.Stores(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load stores")
	}

	out := make([]Snapshot, 0, len(stores))
	for _, store := range stores {
		var stocktake *models.Stocktake
		if store.IsFactory {
			stocktake, err = s.latest(ctx, store.ID, true)
			if err != nil {
				return nil, err
			}
		}
		if stocktake == nil {
			stocktake, err = s.latest(ctx, store.ID, false)
			if err != nil {
				return nil, err
			}
		}
		if stocktake == nil {
			continue
		}
		out = append(out, Snapshot{Store: store, Stocktake: *stocktake})
	}
	return out, nil
}

func (s *service) latest(ctx context.Context, storeID uuid.UUID, masterOnly bool) (*models.Stocktake, error) {
	stocktake, err := s.repo.LatestStocktake(ctx, storeID, masterOnly)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load stocktake")
	}
	return stocktake, nil
}
