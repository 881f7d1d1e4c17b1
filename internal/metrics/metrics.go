package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// QueueMetrics counts enqueue outcomes per event name. Enqueue failures are
// swallowed by the command handlers, so without these counters undelivered
// events would be visible only in the logs.
type QueueMetrics struct {
	Enqueued *prometheus.CounterVec
}

func NewQueueMetrics(reg prometheus.Registerer) *QueueMetrics {
	enqueued := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "store",
		Subsystem: "orders",
		Name:      "events_enqueued_total",
		Help:      "Total number of domain event enqueue attempts.",
	}, []string{"event", "outcome"})

	reg.MustRegister(enqueued)
	return &QueueMetrics{Enqueued: enqueued}
}

func (m *QueueMetrics) Success(event string) {
	m.Enqueued.WithLabelValues(event, "success").Inc()
}

func (m *QueueMetrics) Failure(event string) {
	m.Enqueued.WithLabelValues(event, "failure").Inc()
}

func Handler() http.Handler {
	return promhttp.Handler()
}
