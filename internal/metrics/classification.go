package metrics

import "github.com/prometheus/client_golang/prometheus"

// Classification (intent routing) Prometheus metrics.
var (
	ClassificationRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "classification_requests_total",
			Help:      "Total number of classification provider requests",
		},
		[]string{"provider", "model", "status"},
	)

	ClassificationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "classification_duration_seconds",
			Help:      "Classification provider request duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"provider", "model"},
	)

	IntentsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "intents_total",
			Help:      "Classified intents by label",
		},
		[]string{"intent"},
	)
)

var clsMetricsRegistered bool

// RegisterClassificationMetrics registers classification metrics. Must be called once from main.
func RegisterClassificationMetrics() {
	if clsMetricsRegistered {
		return
	}
	prometheus.MustRegister(ClassificationRequestsTotal, ClassificationDuration, IntentsTotal)
	clsMetricsRegistered = true
}
