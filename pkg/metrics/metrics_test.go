package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPMetricsExportsCounterAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)
	m.Observe("GET", "/api/products/{id}", 200, 40*time.Millisecond)
	m.Observe("GET", "/api/products/{id}", 200, 10*time.Millisecond)
	m.Observe("POST", "", 404, time.Millisecond)

	mfs, err := reg.Gather()
	require.NoError(t, err)

	got, err := counterValue(mfs, "http_requests_total", map[string]string{"method": "GET", "route": "/api/products/{id}", "status": "200"})
	require.NoError(t, err)
	assert.Equal(t, float64(2), got)

	got, err = counterValue(mfs, "http_requests_total", map[string]string{"route": "unknown", "status": "404"})
	require.NoError(t, err)
	assert.Equal(t, float64(1), got)

	count, err := histogramCount(mfs, "http_request_duration_seconds", map[string]string{"route": "/api/products/{id}"})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), count)
}

func TestCheckoutMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewCheckoutMetrics(reg)
	m.IncPlaced()
	m.IncFailure("empty_cart")
	m.IncFailure("empty_cart")
	m.IncSideEffectFailure("email")

	mfs, err := reg.Gather()
	require.NoError(t, err)

	got, err := counterValue(mfs, "orders_placed_total", nil)
	require.NoError(t, err)
	assert.Equal(t, float64(1), got)

	got, err = counterValue(mfs, "checkout_failures_total", map[string]string{"reason": "empty_cart"})
	require.NoError(t, err)
	assert.Equal(t, float64(2), got)

	got, err = counterValue(mfs, "checkout_side_effect_failures_total", map[string]string{"kind": "email"})
	require.NoError(t, err)
	assert.Equal(t, float64(1), got)
}

func TestNilRegistererIsNoop(t *testing.T) {
	assert.NotPanics(t, func() {
		NewHTTPMetrics(nil).Observe("GET", "/", 200, time.Millisecond)
		c := NewCheckoutMetrics(nil)
		c.IncPlaced()
		c.IncFailure("x")
		c.IncSideEffectFailure("y")
		var nilMetrics *CheckoutMetrics
		nilMetrics.IncPlaced()
	})
}

func counterValue(mfs []*dto.MetricFamily, name string, labels map[string]string) (float64, error) {
	metric, err := findMetric(mfs, name, labels)
	if err != nil {
		return 0, err
	}
	return metric.GetCounter().GetValue(), nil
}

func histogramCount(mfs []*dto.MetricFamily, name string, labels map[string]string) (uint64, error) {
	metric, err := findMetric(mfs, name, labels)
	if err != nil {
		return 0, err
	}
	return metric.GetHistogram().GetSampleCount(), nil
}

func findMetric(mfs []*dto.MetricFamily, name string, labels map[string]string) (*dto.Metric, error) {
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
		for _, metric := range mf.GetMetric() {
			if matchesLabels(metric.GetLabel(), labels) {
				return metric, nil
			}
		}
		return nil, fmt.Errorf("metric %q missing labels %v", name, labels)
	}
	return nil, fmt.Errorf("metric %q not found", name)
}

func matchesLabels(pairs []*dto.LabelPair, want map[string]string) bool {
	for key, value := range want {
		found := false
		for _, pair := range pairs {
			if pair.GetName() == key && pair.GetValue() == value {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
