package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// externalCallsTotal counts outbound calls.
	// Labels: service (places, weather, llm), op, outcome (ok, not_found, error, disabled)
	externalCallsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "partyplanner",
		Subsystem: "external",
		Name:      "calls_total",
		Help:      "Outbound calls by service, operation and outcome",
	}, []string{"service", "op", "outcome"})

	// cacheLookupsTotal counts memoization hits and misses.
	// Labels: cache (places, weather), result (hit, miss)
	cacheLookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "partyplanner",
		Subsystem: "cache",
		Name:      "lookups_total",
		Help:      "Cache lookups by cache and result",
	}, []string{"cache", "result"})

	// venueRequestsTotal counts venue requests by the stage that produced the answer.
	// Labels: path (resolved, fallback, fallback_retry, empty)
	venueRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "partyplanner",
		Subsystem: "venue",
		Name:      "requests_total",
		Help:      "Venue requests by resolution path",
	}, []string{"path"})

	venueDurationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "partyplanner",
		Subsystem: "venue",
		Name:      "duration_seconds",
		Help:      "End-to-end venue pipeline latency",
		Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 20, 40, 80},
	})
)

// RecordCall records the outcome of one outbound call
func RecordCall(service, op, outcome string) {
	externalCallsTotal.WithLabelValues(service, op, outcome).Inc()
}

// RecordCache records a cache hit or miss
func RecordCache(cache string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	cacheLookupsTotal.WithLabelValues(cache, result).Inc()
}

// RecordVenueRequest records which stage produced the venues and how long it took
func RecordVenueRequest(path string, elapsed time.Duration) {
	venueRequestsTotal.WithLabelValues(path).Inc()
	venueDurationSeconds.Observe(elapsed.Seconds())
}
