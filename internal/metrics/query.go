package metrics

import "github.com/prometheus/client_golang/prometheus"

// Query outcome values.
const (
	OutcomeAnswered  = "answered"
	OutcomeNoResults = "no_results"
	OutcomeFailed    = "failed"
)

// Query orchestration Prometheus metrics.
var (
	QueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "queries_total",
			Help:      "Total answered queries by intent and outcome",
		},
		[]string{"intent", "outcome"},
	)

	QueryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "query_duration_seconds",
			Help:      "End-to-end query duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"intent"},
	)

	ProductMatches = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "product_matches",
			Help:      "Products matching a product query before truncation",
			Buckets:   []float64{0, 1, 2, 5, 10, 25, 50, 100},
		},
	)

	RateLimitedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_rate_limited_total",
			Help:      "Requests rejected by the rate limiter",
		},
	)
)

var queryMetricsRegistered bool

// RegisterQueryMetrics registers query metrics. Must be called once from main.
func RegisterQueryMetrics() {
	if queryMetricsRegistered {
		return
	}
	prometheus.MustRegister(QueriesTotal, QueryDuration, ProductMatches, RateLimitedTotal)
	queryMetricsRegistered = true
}

// RegisterAll registers every collector of this package.
func RegisterAll() {
	RegisterEmbeddingMetrics()
	RegisterClassificationMetrics()
	RegisterQueryMetrics()
}
