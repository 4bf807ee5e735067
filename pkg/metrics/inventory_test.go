package metrics

import (
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestInventoryMetricsExportCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewInventoryMetrics(reg)

	metrics.IncAdjustment("in")
	metrics.IncAdjustment("in")
	metrics.IncAdjustment("out")
	metrics.IncInstallation()
	metrics.IncRejection("insufficient_stock")
	metrics.ObserveTxDuration("adjust", 0.02)
	metrics.ObserveTxDuration("adjust", 0.05)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "inventory_adjustments_total", "direction", "in"); err != nil {
		t.Fatalf("fetch adjustments in: %v", err)
	} else if got != 2 {
		t.Fatalf("expected in=2, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "inventory_adjustments_total", "direction", "out"); err != nil {
		t.Fatalf("fetch adjustments out: %v", err)
	} else if got != 1 {
		t.Fatalf("expected out=1, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "inventory_rejections_total", "reason", "insufficient_stock"); err != nil {
		t.Fatalf("fetch rejections: %v", err)
	} else if got != 1 {
		t.Fatalf("expected rejections=1, got %f", got)
	}

	if got, err := fetchHistogramCount(mfs, "inventory_tx_duration_seconds", "operation", "adjust"); err != nil {
		t.Fatalf("fetch tx duration: %v", err)
	} else if got != 2 {
		t.Fatalf("expected 2 duration samples, got %d", got)
	}
}

func TestInventoryMetricsNilSafe(t *testing.T) {
	var metrics *InventoryMetrics
	metrics.IncAdjustment("in")
	metrics.IncInstallation()
	metrics.IncRejection("validation")

	metrics.ObserveTxDuration("adjust", 0.01)

	empty := NewInventoryMetrics(nil)
	empty.IncAdjustment("out")
	empty.ObserveTxDuration("consume", 0.01)
}

func fetchCounterValue(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing label %s=%s", name, label, value)
}

func fetchHistogramCount(mfs []*dto.MetricFamily, name, label, value string) (uint64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetHistogram().GetSampleCount(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing label %s=%s", name, label, value)
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func matchesLabel(labels []*dto.LabelPair, name, value string) bool {
	for _, label := range labels {
		if label.GetName() == name && label.GetValue() == value {
			return true
		}
	}
	return false
}
