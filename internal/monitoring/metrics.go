// Package monitoring exposes the bot's Prometheus metrics.
package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	commandsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "printqueue_commands_total",
			Help: "Queue commands processed, by operation and outcome",
		},
		[]string{"operation", "status"},
	)

	queueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "printqueue_length",
			Help: "Current number of occupied slots in the queue",
		},
	)

	promotionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "printqueue_promotions_total",
			Help: "Times a waiting user was promoted to the front",
		},
	)

	persistFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "printqueue_persist_failures_total",
			Help: "Durable snapshot writes that failed",
		},
	)
)

// TrackCommand counts one processed command. Status is one of ok, rejected,
// error or unhealthy.
func TrackCommand(operation, status string) {
	commandsTotal.WithLabelValues(operation, status).Inc()
}

func SetQueueLength(n int) {
	queueLength.Set(float64(n))
}

func TrackPromotion() {
	promotionsTotal.Inc()
}

func TrackPersistFailure() {
	persistFailures.Inc()
}
