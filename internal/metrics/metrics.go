// Package metrics exposes Prometheus instrumentation for the hunt service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "hunt"

var (
	teamsRegistered = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "teams_registered",
		Help:      "Number of registered teams.",
	})

	answersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "answers_total",
		Help:      "Answer submissions by result.",
	}, []string{"result"})

	autoAdvancesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auto_advances_total",
		Help:      "Questions forfeited after exhausting attempts.",
	})

	hintsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "hints_total",
		Help:      "Hints handed out.",
	})

	syncSnapshotsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "sync",
		Name:      "snapshots_total",
		Help:      "Snapshot publishes by outcome.",
	}, []string{"outcome"})

	syncQueueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "sync",
		Name:      "queue_depth",
		Help:      "Snapshots waiting for the mirror writer.",
	})

	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by route pattern and status.",
	}, []string{"method", "route", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by route pattern.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})
)

func SetTeamsRegistered(n int) { teamsRegistered.Set(float64(n)) }

func RecordAnswer(correct bool) {
	result := "wrong"
	if correct {
		result = "correct"
	}
	answersTotal.WithLabelValues(result).Inc()
}

func RecordAutoAdvance() { autoAdvancesTotal.Inc() }

func RecordHint() { hintsTotal.Inc() }

// Sync outcomes: written, dropped (queue full), failed (store gave up).
func RecordSyncWritten() { syncSnapshotsTotal.WithLabelValues("written").Inc() }
func RecordSyncDropped() { syncSnapshotsTotal.WithLabelValues("dropped").Inc() }
func RecordSyncFailed()  { syncSnapshotsTotal.WithLabelValues("failed").Inc() }

func SetSyncQueueDepth(n int) { syncQueueDepth.Set(float64(n)) }

func RecordHTTPRequest(method, route string, status int, elapsed time.Duration) {
	httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Handler serves the Prometheus scrape endpoint.
func Handler() http.Handler { return promhttp.Handler() }
