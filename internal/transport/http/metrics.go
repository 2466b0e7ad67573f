package httptransport

import "github.com/prometheus/client_golang/prometheus"

var (
	requestCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fitness_client",
		Subsystem: "transport",
		Name:      "requests_total",
		Help:      "Backend requests grouped by method, route template and status code.",
	}, []string{"method", "route", "code"})

	requestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "fitness_client",
		Subsystem: "transport",
		Name:      "request_duration_seconds",
		Help:      "Round-trip latency of backend requests.",
		Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
	}, []string{"route"})

	sessionClearedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "fitness_client",
		Subsystem: "transport",
		Name:      "session_cleared_total",
		Help:      "Number of times an unauthorized response wiped the session.",
	})
)

func init() {
	prometheus.MustRegister(requestCounter, requestDuration, sessionClearedCounter)
}
