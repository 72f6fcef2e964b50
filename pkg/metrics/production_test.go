package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func TestProductionPlanMetricsPublish(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewProductionPlanMetrics(reg)
	m.Publish(3, 12.5, 4, 1)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	want := map[string]float64{
		"gelato_production_plan_flavors":            3,
		"gelato_production_plan_units":              12.5,
		"gelato_production_plan_deliveries":         4,
		"gelato_production_plan_items_below_target": 1,
	}
	for name, value := range want {
		mf := findMetricFamily(mfs, name)
		if mf == nil {
			t.Fatalf("metric %s not found", name)
		}
		if got := mf.GetMetric()[0].GetGauge().GetValue(); got != value {
			t.Fatalf("%s: expected %v got %v", name, value, got)
		}
	}
}

func TestNilRegistererIsNoop(t *testing.T) {
	NewProductionPlanMetrics(nil).Publish(1, 1, 1, 1)
	NewHTTPMetrics(nil).Observe("/x", "GET", 200, time.Millisecond)
	var cron *CronJobMetrics
	cron.ObserveRun("x", time.Second, nil)
}

func TestHTTPMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)
	m.Observe("/api/v1/production/plan", "GET", 200, 20*time.Millisecond)
	m.Observe("", "GET", 404, time.Millisecond)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	got, err := fetchCounterValue(mfs, "gelato_http_requests_total", "route", "unknown")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if got != 1 {
		t.Fatalf("expected unknown route counter 1, got %v", got)
	}
}
