package queue

import "github.com/prometheus/client_golang/prometheus"

// Collectors are package-level because both the worker and the admin handlers
// update them. Kinds are sanitized through queueLabel before use.
var (
	QueueDepth = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "queue_depth",
		Help: "Approximate number of ready tasks per kind.",
	}, []string{"kind"})

	QueueProcessedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "queue_processed_total",
		Help: "Tasks processed, labelled ok, retry or dlq.",
	}, []string{"kind", "status"})

	QueueDLQSize = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "queue_dlq_size",
		Help: "Tasks parked in the dead letter queue per kind.",
	}, []string{"kind"})
)

func init() {
	prometheus.MustRegister(QueueDepth, QueueProcessedTotal, QueueDLQSize)
}
