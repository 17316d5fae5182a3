package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the procurement catalog service.
type Metrics struct {
	// Procurements created, by source: "direct" or "generated"
	ProcurementsCreated *prometheus.CounterVec

	// Generation workflow latency, catalog read included
	GenerateLatency prometheus.Histogram

	// Catalog gateway read outcomes: "ok" or "failed"
	CatalogFetch *prometheus.CounterVec

	// Filter queries by mode: "none", "quantity", "status", "vendor_data"
	FilterQueries *prometheus.CounterVec
}

// New creates a Metrics instance with all procurement metrics registered.
func New() *Metrics {
	return &Metrics{
		ProcurementsCreated: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "procure_procurements_created_total",
			Help: "Total procurement records created, by source",
		}, []string{"source"}),

		GenerateLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "procure_generate_duration_seconds",
			Help:    "Duration of the generation fan-out including the catalog read",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),

		CatalogFetch: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "procure_catalog_fetch_total",
			Help: "Catalog gateway read outcomes",
		}, []string{"outcome"}),

		FilterQueries: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "procure_filter_queries_total",
			Help: "Procurement listing queries by filter mode",
		}, []string{"mode"}),
	}
}

// IncrementCreated records a created procurement.
func (m *Metrics) IncrementCreated(source string) {
	if m != nil {
		m.ProcurementsCreated.WithLabelValues(source).Inc()
	}
}

// ObserveGenerateLatency records the duration of a generation call.
func (m *Metrics) ObserveGenerateLatency(d time.Duration) {
	if m != nil {
		m.GenerateLatency.Observe(d.Seconds())
	}
}

// RecordCatalogFetch records a catalog gateway read outcome.
func (m *Metrics) RecordCatalogFetch(outcome string) {
	if m != nil {
		m.CatalogFetch.WithLabelValues(outcome).Inc()
	}
}

// IncrementFilterQuery records a listing query by filter mode.
func (m *Metrics) IncrementFilterQuery(mode string) {
	if m != nil {
		m.FilterQueries.WithLabelValues(mode).Inc()
	}
}
