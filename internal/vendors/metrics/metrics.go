package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the vendor registry.
type Metrics struct {
	// Vendors accepted by the registry
	VendorsCreated prometheus.Counter

	// Replication call outcomes: "ok" or "failed"
	ReplicationOutcome *prometheus.CounterVec

	// Replication call latency
	ReplicationLatency prometheus.Histogram
}

// New creates a Metrics instance with all vendor registry metrics registered.
func New() *Metrics {
	return &Metrics{
		VendorsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "procure_vendors_created_total",
			Help: "Total vendors accepted by the registry",
		}),

		ReplicationOutcome: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "procure_vendor_replication_total",
			Help: "Vendor replication call outcomes",
		}, []string{"outcome"}),

		ReplicationLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "procure_vendor_replication_duration_seconds",
			Help:    "Duration of replication calls to the procurement service",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
	}
}

// IncrementVendorsCreated records an accepted vendor.
func (m *Metrics) IncrementVendorsCreated() {
	if m != nil {
		m.VendorsCreated.Inc()
	}
}

// RecordReplication records a replication call outcome and duration.
func (m *Metrics) RecordReplication(outcome string, d time.Duration) {
	if m != nil {
		m.ReplicationOutcome.WithLabelValues(outcome).Inc()
		m.ReplicationLatency.Observe(d.Seconds())
	}
}
