package notify

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	processedCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fitness_client",
		Subsystem: "notify",
		Name:      "messages_processed_total",
		Help:      "Number of Kafka messages handled by the notifier.",
	}, []string{"topic", "event_type"})

	handlerErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fitness_client",
		Subsystem: "notify",
		Name:      "handler_errors_total",
		Help:      "Number of Kafka messages whose handler returned an error.",
	}, []string{"topic", "event_type"})

	decodeErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fitness_client",
		Subsystem: "notify",
		Name:      "decode_errors_total",
		Help:      "Number of event payloads that could not be decoded.",
	}, []string{"event_type"})

	lastMessageGauge = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "fitness_client",
		Subsystem: "notify",
		Name:      "last_message_timestamp_seconds",
		Help:      "Timestamp of the most recent Kafka message processed.",
	}, []string{"topic"})
)

func init() {
	prometheus.MustRegister(processedCounter, handlerErrors, decodeErrors, lastMessageGauge)
}

func recordProcessed(msg Message) {
	processedCounter.WithLabelValues(msg.Topic, msg.EventType()).Inc()
	if !msg.Timestamp.IsZero() {
		lastMessageGauge.WithLabelValues(msg.Topic).Set(float64(msg.Timestamp.Unix()))
	}
}

func recordHandlerError(msg Message) {
	handlerErrors.WithLabelValues(msg.Topic, msg.EventType()).Inc()
}

func recordDecodeError(eventType string) {
	decodeErrors.WithLabelValues(eventType).Inc()
}
