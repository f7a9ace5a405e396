package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestCartMetricsExportsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewCartMetrics(reg)

	m.IncOperation("add_item", "success")
	m.IncOperation("add_item", "success")
	m.IncOperation("update_quantity", "insufficient_stock")
	m.IncSnapshotWarning()

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "cart_operations_total", "operation", "add_item"); err != nil {
		t.Fatalf("fetch add_item: %v", err)
	} else if got != 2 {
		t.Fatalf("expected add_item=2, got %f", got)
	}

	mf := findMetricFamily(mfs, "cart_snapshot_warnings_total")
	if mf == nil || len(mf.GetMetric()) == 0 || mf.GetMetric()[0].GetCounter().GetValue() != 1 {
		t.Fatalf("expected one snapshot warning, got %v", mf)
	}
}

func TestHTTPMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	m.Observe("GET", "/api/v1/products", "200", 120*time.Millisecond)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	if got, err := fetchCounterValue(mfs, "http_requests_total", "route", "/api/v1/products"); err != nil {
		t.Fatalf("fetch requests: %v", err)
	} else if got != 1 {
		t.Fatalf("expected requests=1, got %f", got)
	}
}

func TestNilReceiversAreSafe(t *testing.T) {
	var h *HTTPMetrics
	var c *CartMetrics
	h.Observe("GET", "/", "200", time.Millisecond)
	c.IncOperation("add_item", "success")
	c.IncSnapshotWarning()
}

func fetchCounterValue(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	var sum float64
	var matched bool
	for _, metric := range mf.GetMetric() {
		for _, pair := range metric.GetLabel() {
			if pair.GetName() == label && pair.GetValue() == value {
				sum += metric.GetCounter().GetValue()
				matched = true
			}
		}
	}
	if !matched {
		return 0, fmt.Errorf("label %s=%s not found on %q", label, value, name)
	}
	return sum, nil
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}
