package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the application's Prometheus metrics
type Metrics struct {
	// Notebook metrics
	NotebookEntriesAdded prometheus.Counter
	NotebookToggles      prometheus.Counter
	NotebookRemovals     prometheus.Counter

	// Summary metrics
	SummaryLookups       *prometheus.CounterVec
	SummaryBuildDuration prometheus.Histogram
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		NotebookEntriesAdded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "paisavault_notebook_entries_added_total",
			Help: "Total number of notebook entries added",
		}),
		NotebookToggles: promauto.NewCounter(prometheus.CounterOpts{
			Name: "paisavault_notebook_toggles_total",
			Help: "Total number of settlement toggles",
		}),
		NotebookRemovals: promauto.NewCounter(prometheus.CounterOpts{
			Name: "paisavault_notebook_removals_total",
			Help: "Total number of notebook entries removed",
		}),

		SummaryLookups: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "paisavault_summary_lookups_total",
				Help: "Dashboard summary lookups by cache result",
			},
			[]string{"result"},
		),
		SummaryBuildDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "paisavault_summary_build_duration_seconds",
			Help:    "Time spent recomputing the dashboard summary",
			Buckets: prometheus.DefBuckets,
		}),
	}
}
