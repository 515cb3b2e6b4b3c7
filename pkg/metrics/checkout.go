package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// CheckoutMetrics tracks order placement outcomes.
type CheckoutMetrics struct {
	placed      prometheus.Counter
	failures    *prometheus.CounterVec
	sideEffects *prometheus.CounterVec
}

// NewCheckoutMetrics registers the checkout metrics on the provided registerer.
func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		return &CheckoutMetrics{}
	}
	placed := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_placed_total",
		Help: "Orders committed by checkout.",
	})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_failures_total",
		Help: "Checkout attempts rejected or rolled back, by reason.",
	}, []string{"reason"})
	sideEffects := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_side_effect_failures_total",
		Help: "Post-commit notifications that failed, by kind.",
	}, []string{"kind"})
	reg.MustRegister(placed, failures, sideEffects)
	return &CheckoutMetrics{
		placed:      placed,
		failures:    failures,
		sideEffects: sideEffects,
	}
}

// IncPlaced counts a committed order.
func (c *CheckoutMetrics) IncPlaced() {
	if c == nil || c.placed == nil {
		return
	}
	c.placed.Inc()
}

// IncFailure counts a failed placement.
func (c *CheckoutMetrics) IncFailure(reason string) {
	if c == nil || c.failures == nil {
		return
	}
	c.failures.WithLabelValues(normalizeLabel(reason)).Inc()
}

// IncSideEffectFailure counts a failed email or event publish.
func (c *CheckoutMetrics) IncSideEffectFailure(kind string) {
	if c == nil || c.sideEffects == nil {
		return
	}
	c.sideEffects.WithLabelValues(normalizeLabel(kind)).Inc()
}
