package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for QueriesTotal.
const (
	OutcomeMatched    = "matched"
	OutcomeNoMatch    = "no_match"
	OutcomeUnresolved = "unresolved"
	OutcomeEmpty      = "empty"
)

// Metrics owns a private registry so several servers can coexist in one process.
type Metrics struct {
	registry *prometheus.Registry

	QueriesTotal     *prometheus.CounterVec
	QueryDurationMs  prometheus.Histogram
	UnavailableTotal *prometheus.CounterVec
	CacheHitsTotal   prometheus.Counter
	CacheMissesTotal prometheus.Counter
	RateLimitedTotal prometheus.Counter
	ActiveSessions   prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		QueriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "askdata_queries_total",
			Help: "Total number of processed queries by template and outcome",
		}, []string{"template", "outcome"}),
		QueryDurationMs: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "askdata_query_duration_ms",
			Help:    "Query parse and render duration in milliseconds",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 50, 100, 500, 1000},
		}),
		UnavailableTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "askdata_unavailable_results_total",
			Help: "Total number of parsed queries with no backing data",
		}, []string{"template"}),
		CacheHitsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "askdata_cache_hits_total",
			Help: "Total result cache hits",
		}),
		CacheMissesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "askdata_cache_misses_total",
			Help: "Total result cache misses",
		}),
		RateLimitedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "askdata_rate_limited_total",
			Help: "Total requests rejected by the rate limiter",
		}),
		ActiveSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "askdata_active_sessions",
			Help: "Number of open query sessions",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		m.QueriesTotal,
		m.QueryDurationMs,
		m.UnavailableTotal,
		m.CacheHitsTotal,
		m.CacheMissesTotal,
		m.RateLimitedTotal,
		m.ActiveSessions,
	)
	return m
}

// Handler exposes the registry for scraping.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
