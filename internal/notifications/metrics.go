package notifications

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "placementhub"

var (
	notificationQueueSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "notifications",
			Name:      "queue_size",
			Help:      "Number of notifications in the delivery queue",
		},
		[]string{"state"},
	)

	notificationsDelivered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "notifications",
			Name:      "delivered_total",
			Help:      "Total queue items processed by outcome",
		},
		[]string{"type", "outcome"},
	)

	notificationDeliveryDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "notifications",
			Name:      "delivery_duration_seconds",
			Help:      "Time to deliver a queued notification",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
	)
)

// recordDelivery records a processed queue item.
func recordDelivery(typ, outcome string) {
	notificationsDelivered.WithLabelValues(typ, outcome).Inc()
}

// recordDeliveryDuration records delivery time.
func recordDeliveryDuration(duration time.Duration) {
	notificationDeliveryDuration.Observe(duration.Seconds())
}

// RecordQueueStats updates queue depth metrics.
func RecordQueueStats(stats *QueueStats) {
	notificationQueueSize.WithLabelValues("pending").Set(float64(stats.Pending))
	notificationQueueSize.WithLabelValues("due").Set(float64(stats.Due))
}
