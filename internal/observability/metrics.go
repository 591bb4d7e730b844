package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus instruments for the localization engine
// and the upstream feed clients.
type Metrics struct {
	// Resolutions by the tier that answered:
	// identity, catalog, pattern, cache, latin, remote, fallback.
	Resolutions *prometheus.CounterVec

	// Remote provider calls by outcome {success, error} and their duration.
	RemoteCalls    *prometheus.CounterVec
	RemoteDuration prometheus.Histogram

	// Upstream feed requests by feed {warning, forecast, quake} and
	// outcome {success, error}.
	UpstreamRequests *prometheus.CounterVec

	// Current number of entries in the persistent translation cache.
	CacheEntries prometheus.Gauge

	// Cache warmer runs by outcome {success, error}.
	WarmRuns *prometheus.CounterVec
}

// NewMetrics creates and registers all metrics with the default registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.Resolutions,
		m.RemoteCalls,
		m.RemoteDuration,
		m.UpstreamRequests,
		m.CacheEntries,
		m.WarmRuns,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, so
// parallel tests don't trip "already registered" panics.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		Resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "disaster_alert",
			Name:      "resolutions_total",
			Help:      "Translation resolutions by answering tier.",
		}, []string{"tier"}),
		RemoteCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "disaster_alert",
			Name:      "remote_calls_total",
			Help:      "Remote translation provider calls by outcome.",
		}, []string{"outcome"}),
		RemoteDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "disaster_alert",
			Name:      "remote_call_duration_seconds",
			Help:      "Remote translation provider call duration.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "disaster_alert",
			Name:      "upstream_requests_total",
			Help:      "Upstream agency feed requests by feed and outcome.",
		}, []string{"feed", "outcome"}),
		CacheEntries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "disaster_alert",
			Name:      "translation_cache_entries",
			Help:      "Entries currently held in the translation cache.",
		}),
		WarmRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "disaster_alert",
			Name:      "warm_runs_total",
			Help:      "Cache warmer runs by outcome.",
		}, []string{"outcome"}),
	}
}
