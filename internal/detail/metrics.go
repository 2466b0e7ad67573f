package detail

import "github.com/prometheus/client_golang/prometheus"

var recommendationMisses = prometheus.NewCounterVec(prometheus.CounterOpts{
	Namespace: "fitness_client",
	Subsystem: "detail",
	Name:      "recommendation_misses_total",
	Help:      "Detail views rendered without a recommendation, by reason (not_found or error).",
}, []string{"reason"})

func init() {
	prometheus.MustRegister(recommendationMisses)
}

func recordRecommendationMiss(reason string) {
	recommendationMisses.WithLabelValues(reason).Inc()
}
