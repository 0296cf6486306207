// Package metrics provides Prometheus metrics for the echelon analysis
// service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the service's Prometheus collectors.
type Metrics struct {
	runsTotal       *prometheus.CounterVec
	runDuration     *prometheus.HistogramVec
	subsetFrontiers *prometheus.CounterVec
	entriesSkipped  *prometheus.CounterVec
	populationSize  *prometheus.GaugeVec
}

// New registers the service collectors on reg. Pass
// prometheus.DefaultRegisterer in main; tests use a fresh registry.
func New(reg prometheus.Registerer) *Metrics {
	auto := promauto.With(reg)
	return &Metrics{
		runsTotal: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "echelon",
			Name:      "runs_total",
			Help:      "Analysis runs by mode and outcome",
		}, []string{"mode", "status"}),
		runDuration: auto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "echelon",
			Name:      "run_duration_seconds",
			Help:      "Wall time of one full analysis run",
			Buckets:   prometheus.DefBuckets,
		}, []string{"mode"}),
		subsetFrontiers: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "echelon",
			Name:      "subset_frontiers_total",
			Help:      "Subset frontier computations performed",
		}, []string{"mode"}),
		entriesSkipped: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "echelon",
			Name:      "entries_skipped_total",
			Help:      "Entries excluded from analysis for invalid dimension values",
		}, []string{"mode"}),
		populationSize: auto.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "echelon",
			Name:      "population_size",
			Help:      "Entries in the most recent run per mode",
		}, []string{"mode"}),
	}
}

func (m *Metrics) RunCompleted(mode string, dur time.Duration, population, subsets, skipped int) {
	m.runsTotal.WithLabelValues(mode, "completed").Inc()
	m.runDuration.WithLabelValues(mode).Observe(dur.Seconds())
	m.subsetFrontiers.WithLabelValues(mode).Add(float64(subsets))
	m.entriesSkipped.WithLabelValues(mode).Add(float64(skipped))
	m.populationSize.WithLabelValues(mode).Set(float64(population))
}

func (m *Metrics) RunFailed(mode string, dur time.Duration) {
	m.runsTotal.WithLabelValues(mode, "failed").Inc()
	m.runDuration.WithLabelValues(mode).Observe(dur.Seconds())
}
