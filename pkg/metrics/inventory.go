package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// InventoryMetrics records counters for stock mutations and the latency of
// their transactions.
type InventoryMetrics struct {
	adjustments   *prometheus.CounterVec
	installations prometheus.Counter
	rejections    *prometheus.CounterVec
	txDuration    *prometheus.HistogramVec
}

// NewInventoryMetrics registers the inventory metrics on the provided registerer.
func NewInventoryMetrics(reg prometheus.Registerer) *InventoryMetrics {
	if reg == nil {
		return &InventoryMetrics{}
	}
	adjustments := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "inventory_adjustments_total",
		Help: "Committed stock adjustments by direction.",
	}, []string{"direction"})
	installations := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "inventory_installations_total",
		Help: "Committed part installations.",
	})
	rejections := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "inventory_rejections_total",
		Help: "Rejected stock mutations by reason.",
	}, []string{"reason"})
	txDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "inventory_tx_duration_seconds",
		Help:    "Duration of stock mutation transactions.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
	reg.MustRegister(adjustments, installations, rejections, txDuration)
	return &InventoryMetrics{
		adjustments:   adjustments,
		installations: installations,
		rejections:    rejections,
		txDuration:    txDuration,
	}
}

// IncAdjustment counts a committed adjustment; direction is "in" or "out".
func (m *InventoryMetrics) IncAdjustment(direction string) {
	if m == nil || m.adjustments == nil {
		return
	}
	m.adjustments.WithLabelValues(normalizeLabel(direction)).Inc()
}

// IncInstallation counts a committed part installation.
func (m *InventoryMetrics) IncInstallation() {
	if m == nil || m.installations == nil {
		return
	}
	m.installations.Inc()
}

// IncRejection counts a rejected mutation by reason label.
func (m *InventoryMetrics) IncRejection(reason string) {
	if m == nil || m.rejections == nil {
		return
	}
	m.rejections.WithLabelValues(normalizeLabel(reason)).Inc()
}

// ObserveTxDuration records how long one mutation transaction took;
// operation is "adjust" or "consume".
func (m *InventoryMetrics) ObserveTxDuration(operation string, seconds float64) {
	if m == nil || m.txDuration == nil {
		return
	}
	m.txDuration.WithLabelValues(normalizeLabel(operation)).Observe(seconds)
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
