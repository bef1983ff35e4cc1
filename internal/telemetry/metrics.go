// Package telemetry provides Prometheus instrumentation for the player
// catalog server.
package telemetry

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus instruments for the server.
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	syncRunsTotal   *prometheus.CounterVec
	syncRunDuration *prometheus.HistogramVec
	playersMerged   *prometheus.CounterVec
}

// NewMetrics creates a Metrics instance backed by its own registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,

		httpRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "player_catalog_http_requests_total",
			Help: "Number of HTTP requests handled, by route and status code.",
		}, []string{"method", "route", "code"}),

		httpRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "player_catalog_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds, by route.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"method", "route"}),

		syncRunsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "player_catalog_sync_runs_total",
			Help: "Number of club sync runs, by club and outcome.",
		}, []string{"club", "outcome"}),

		syncRunDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "player_catalog_sync_run_duration_seconds",
			Help:    "Duration of club sync runs in seconds.",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		}, []string{"club"}),

		playersMerged: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "player_catalog_players_merged_total",
			Help: "Number of player documents written by sync runs, by kind.",
		}, []string{"club", "kind"}),
	}
}

// Handler returns the HTTP handler exposing the metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordRequest records one handled HTTP request. Safe on a nil receiver.
func (m *Metrics) RecordRequest(method, route string, code int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordSyncRun records one club sync run. Safe on a nil receiver.
func (m *Metrics) RecordSyncRun(club string, duration time.Duration, inserted, modified int64, err error) {
	if m == nil {
		return
	}

	outcome := "success"
	if err != nil {
		outcome = "failure"
	}

	m.syncRunsTotal.WithLabelValues(club, outcome).Inc()
	m.syncRunDuration.WithLabelValues(club).Observe(duration.Seconds())

	if err == nil {
		m.playersMerged.WithLabelValues(club, "inserted").Add(float64(inserted))
		m.playersMerged.WithLabelValues(club, "modified").Add(float64(modified))
	}
}
