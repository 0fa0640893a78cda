package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "pnl_tracker"

// Outcome label values for upstream calls.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
	OutcomeStatus  = "bad_status"
)

var (
	// UpstreamRequestsTotal counts calls to Moralis and DEXScreener by outcome.
	UpstreamRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_total",
			Help:      "Upstream API requests by provider, endpoint and outcome.",
		},
		[]string{"provider", "endpoint", "outcome"},
	)

	UpstreamRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "Latency of upstream API requests.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"provider", "endpoint"},
	)

	PipelineDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pipeline_duration_seconds",
			Help:      "End-to-end duration of a portfolio computation.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"view", "result"},
	)

	PriceDegradedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "price_degraded_total",
			Help:      "Tokens whose spot price lookup failed and were reported with a zero price.",
		},
		[]string{"view"},
	)

	PositionsReturned = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "positions_returned",
			Help:      "Number of token rows returned per request.",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100},
		},
		[]string{"view"},
	)
)

var registerOnce sync.Once

// MustRegisterMetrics registers all collectors with the default registry. Safe to call more than once.
func MustRegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			UpstreamRequestsTotal,
			UpstreamRequestDuration,
			PipelineDuration,
			PriceDegradedTotal,
			PositionsReturned,
		)
	})
}

// ObserveUpstream records one upstream call.
func ObserveUpstream(provider, endpoint, outcome string, started time.Time) {
	UpstreamRequestsTotal.WithLabelValues(provider, endpoint, outcome).Inc()
	UpstreamRequestDuration.WithLabelValues(provider, endpoint).Observe(time.Since(started).Seconds())
}
