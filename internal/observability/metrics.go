package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// alert ingestion service.
type Metrics struct {
	FetchAttempts *prometheus.CounterVec   // labels: resource={feed,detail}, outcome={success,error}
	FetchDuration *prometheus.HistogramVec // labels: resource={feed,detail}
	CacheLookups  *prometheus.CounterVec   // labels: resource={feed,detail}, result={fresh,stale,miss}
	StaleServed   prometheus.Counter
	ParseErrors   *prometheus.CounterVec // labels: resource={feed,detail}

	// Poller metrics.
	RefreshRuns   *prometheus.CounterVec // labels: outcome={success,error}
	ActiveAlerts  prometheus.Gauge
	PollerRunning prometheus.Gauge

	// Fan-out metrics.
	AlertsPublished prometheus.Counter
	StreamClients   prometheus.Gauge
}

func newMetrics() *Metrics {
	return &Metrics{
		FetchAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pagasa_alerts",
			Name:      "fetch_attempts_total",
			Help:      "Upstream fetch attempts by resource and outcome.",
		}, []string{"resource", "outcome"}),
		FetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "pagasa_alerts",
			Name:      "fetch_duration_seconds",
			Help:      "Duration of a complete retry-wrapped fetch.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"resource"}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pagasa_alerts",
			Name:      "cache_lookups_total",
			Help:      "Cache lookups by resource and result.",
		}, []string{"resource", "result"}),
		StaleServed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pagasa_alerts",
			Name:      "stale_served_total",
			Help:      "Responses served from a stale cache entry after a failed refresh.",
		}),
		ParseErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pagasa_alerts",
			Name:      "parse_errors_total",
			Help:      "Documents that fetched successfully but failed to parse.",
		}, []string{"resource"}),
		RefreshRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pagasa_alerts",
			Name:      "refresh_runs_total",
			Help:      "Background refresh cycles by outcome.",
		}, []string{"outcome"}),
		ActiveAlerts: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "pagasa_alerts",
			Name:      "active_alerts",
			Help:      "Number of alerts in the most recent successful refresh.",
		}),
		PollerRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "pagasa_alerts",
			Name:      "poller_running",
			Help:      "1 when the refresh loop is active, 0 when shut down.",
		}),
		AlertsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pagasa_alerts",
			Name:      "alerts_published_total",
			Help:      "Normalized alerts published to the sink topic.",
		}),
		StreamClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "pagasa_alerts",
			Name:      "stream_clients",
			Help:      "Connected websocket stream clients.",
		}),
	}
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.FetchAttempts,
		m.FetchDuration,
		m.CacheLookups,
		m.StaleServed,
		m.ParseErrors,
		m.RefreshRuns,
		m.ActiveAlerts,
		m.PollerRunning,
		m.AlertsPublished,
		m.StreamClients,
	)
	return m
}

// NewMetricsForTesting creates Metrics without touching the default
// registry, avoiding "already registered" panics across tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}
