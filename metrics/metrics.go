// Package metrics exposes Prometheus collectors for the dashboard's fetch pipeline.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	FetchTotal     *prometheus.CounterVec
	FetchDuration  *prometheus.HistogramVec
	StaleResponses *prometheus.CounterVec
	LibraryLoads   prometheus.Counter
	ActiveSessions prometheus.Gauge
}

// New registers the collectors with reg. Passing nil registers nothing,
// which keeps tests free of global state.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		FetchTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "presence_dashboard_fetch_total",
			Help: "Analysis API fetches by view and outcome",
		}, []string{"view", "outcome"}),
		FetchDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "presence_dashboard_fetch_duration_seconds",
			Help:    "Analysis API fetch latency by view",
			Buckets: prometheus.DefBuckets,
		}, []string{"view"}),
		StaleResponses: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "presence_dashboard_stale_responses_total",
			Help: "Fetch outcomes discarded because a newer selection superseded them",
		}, []string{"view"}),
		LibraryLoads: factory.NewCounter(prometheus.CounterOpts{
			Name: "presence_dashboard_chart_library_loads_total",
			Help: "Chart library initializations",
		}),
		ActiveSessions: factory.NewGauge(prometheus.GaugeOpts{
			Name: "presence_dashboard_active_sessions",
			Help: "Browser sessions currently holding view state",
		}),
	}
}

func (m *Metrics) ObserveFetch(view, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.FetchTotal.WithLabelValues(view, outcome).Inc()
	m.FetchDuration.WithLabelValues(view).Observe(elapsed.Seconds())
}

func (m *Metrics) RecordStale(view string) {
	if m == nil {
		return
	}
	m.StaleResponses.WithLabelValues(view).Inc()
}

func (m *Metrics) RecordLibraryLoad() {
	if m == nil {
		return
	}
	m.LibraryLoads.Inc()
}

func (m *Metrics) SessionStarted() {
	if m == nil {
		return
	}
	m.ActiveSessions.Inc()
}

func (m *Metrics) SessionEnded() {
	if m == nil {
		return
	}
	m.ActiveSessions.Dec()
}
