package cron

import (
	"context"
	"fmt"

	"github.com/JGP1992/theitaliancorner-sub001/internal/production"
	"github.com/JGP1992/theitaliancorner-sub001/pkg/logger"
)

type productionPlanner interface {
	PlanForDays(ctx context.Context, days int) (*production.Report, error)
}

type digestPublisher interface {
	Publish(flavors int, units float64, deliveries int, belowTarget int)
}

type ProductionDigestJobParams struct {
	Logger    *logger.Logger
	Planner   productionPlanner
	Publisher digestPublisher
	Days      int
}

// NewProductionDigestJob computes the upcoming production plan and exports
// its headline numbers as gauges.
func NewProductionDigestJob(params ProductionDigestJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Planner == nil {
		return nil, fmt.Errorf("production planner required")
	}
	if params.Publisher == nil {
		return nil, fmt.Errorf("metrics publisher required")
	}
	days := params.Days
	if days <= 0 {
		days = production.DefaultDays
	}
	return &productionDigestJob{
		logg:      params.Logger,
		planner:   params.Planner,
		publisher: params.Publisher,
		days:      production.ClampDays(days),
	}, nil
}

type productionDigestJob struct {
	logg      *logger.Logger
	planner   productionPlanner
	publisher digestPublisher
	days      int
}

func (j *productionDigestJob) Name() string { return "production-digest" }

func (j *productionDigestJob) Run(ctx context.Context) error {
	report, err := j.planner.PlanForDays(ctx, j.days)
	if err != nil {
		return fmt.Errorf("production digest: %w", err)
	}
	below := report.ItemsBelowTarget()
	j.publisher.Publish(report.Summary.TotalFlavors, report.Summary.TotalUnits, report.Summary.UpcomingDeliveryCount, below)

	logCtx := j.logg.WithFields(ctx, map[string]any{
		"days":               j.days,
		"flavors":            report.Summary.TotalFlavors,
		"units":              report.Summary.TotalUnits,
		"deliveries":         report.Summary.UpcomingDeliveryCount,
		"items_below_target": below,
	})
	j.logg.Info(logCtx, "production.digest_published")
	return nil
}
