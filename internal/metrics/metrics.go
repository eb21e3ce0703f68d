// Package metrics exposes Prometheus collectors for the analysis pipeline.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"SignalSentinel/internal/model"
)

// Metrics holds all collectors. It satisfies both the analysis engine and
// the collector observer interfaces.
type Metrics struct {
	RunsTotal        *prometheus.CounterVec   // labels: status
	AnalyzerDuration *prometheus.HistogramVec // labels: family
	AnalyzerFailures *prometheus.CounterVec   // labels: family
	FetchDuration    *prometheus.HistogramVec // labels: provider
	FetchFailures    *prometheus.CounterVec   // labels: provider

	gatherer prometheus.Gatherer
}

// NewMetrics registers all collectors on reg. A nil reg uses a fresh registry.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	m := &Metrics{
		RunsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "signal_analysis_runs_total",
			Help: "Analysis runs by outcome",
		}, []string{"status"}),
		AnalyzerDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "signal_analyzer_duration_seconds",
			Help:    "Per-family analyzer latency",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}, []string{"family"}),
		AnalyzerFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "signal_analyzer_failures_total",
			Help: "Analyzer calls that returned an unavailable result",
		}, []string{"family"}),
		FetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "signal_fetch_duration_seconds",
			Help:    "Daily bar fetch latency by provider",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider"}),
		FetchFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "signal_fetch_failures_total",
			Help: "Failed daily bar fetches by provider",
		}, []string{"provider"}),
		gatherer: reg,
	}

	reg.MustRegister(
		m.RunsTotal,
		m.AnalyzerDuration,
		m.AnalyzerFailures,
		m.FetchDuration,
		m.FetchFailures,
	)
	return m
}

func (m *Metrics) ObserveAnalyzer(family model.Family, elapsed time.Duration, err error) {
	m.AnalyzerDuration.WithLabelValues(string(family)).Observe(elapsed.Seconds())
	if err != nil {
		m.AnalyzerFailures.WithLabelValues(string(family)).Inc()
	}
}

func (m *Metrics) ObserveFetch(provider string, elapsed time.Duration, err error) {
	m.FetchDuration.WithLabelValues(provider).Observe(elapsed.Seconds())
	if err != nil {
		m.FetchFailures.WithLabelValues(provider).Inc()
	}
}

// RunCompleted counts one pipeline run.
func (m *Metrics) RunCompleted(status string) {
	m.RunsTotal.WithLabelValues(status).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
