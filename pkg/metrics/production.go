package metrics

import "github.com/prometheus/client_golang/prometheus"

// ProductionPlanMetrics publishes the latest production digest as gauges.
type ProductionPlanMetrics struct {
	flavors    prometheus.Gauge
	units      prometheus.Gauge
	deliveries prometheus.Gauge
	lowStock   prometheus.Gauge
}

// NewProductionPlanMetrics registers the production gauges on reg.
func NewProductionPlanMetrics(reg prometheus.Registerer) *ProductionPlanMetrics {
	if reg == nil {
		return &ProductionPlanMetrics{}
	}
	m := &ProductionPlanMetrics{
		flavors: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "production_plan_flavors",
			Help:      "Distinct flavors demanded in the upcoming window.",
		}),
		units: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "production_plan_units",
			Help:      "Total flavor units demanded in the upcoming window.",
		}),
		deliveries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "production_plan_deliveries",
			Help:      "Delivery plans scheduled in the upcoming window.",
		}),
		lowStock: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "production_plan_items_below_target",
			Help:      "Inventory items whose counted total is below their target threshold.",
		}),
	}
	reg.MustRegister(m.flavors, m.units, m.deliveries, m.lowStock)
	return m
}

// Publish overwrites all gauges with the latest digest.
func (m *ProductionPlanMetrics) Publish(flavors int, units float64, deliveries int, belowTarget int) {
	if m == nil || m.flavors == nil {
		return
	}
	m.flavors.Set(float64(flavors))
	m.units.Set(units)
	m.deliveries.Set(float64(deliveries))
	m.lowStock.Set(float64(belowTarget))
}
