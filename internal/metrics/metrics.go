// Package metrics exposes Prometheus instrumentation for import runs.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the collectors updated by the reconciliation engine.
type Metrics struct {
	SourcesProcessed  prometheus.Counter
	SourcesSkipped    *prometheus.CounterVec
	NomineesImported  prometheus.Counter
	CategoriesCreated prometheus.Counter
	RunDuration       prometheus.Histogram
}

// New registers the import collectors on the given registerer. Pass a fresh
// registry in tests to avoid duplicate registration panics.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		SourcesProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "nominee_import",
			Name:      "sources_processed_total",
			Help:      "Sources fetched and parsed successfully.",
		}),
		SourcesSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nominee_import",
			Name:      "sources_skipped_total",
			Help:      "Sources skipped, partitioned by classified reason.",
		}, []string{"reason"}),
		NomineesImported: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "nominee_import",
			Name:      "nominees_imported_total",
			Help:      "Nominee rows inserted across all runs.",
		}),
		CategoriesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "nominee_import",
			Name:      "categories_created_total",
			Help:      "Categories auto-created by the resolver.",
		}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "nominee_import",
			Name:      "run_duration_seconds",
			Help:      "Wall time of complete import runs.",
			Buckets:   prometheus.ExponentialBuckets(0.1, 2, 10),
		}),
	}
	if reg != nil {
		reg.MustRegister(
			m.SourcesProcessed,
			m.SourcesSkipped,
			m.NomineesImported,
			m.CategoriesCreated,
			m.RunDuration,
		)
	}
	return m
}

// NewNop returns unregistered collectors for tests and callers that do not
// scrape.
func NewNop() *Metrics {
	return New(nil)
}
