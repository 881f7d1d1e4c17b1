package queue

import (
	"context"

	"github.com/hdev14/store/internal/metrics"
)

// InstrumentedQueue decorates an EventQueue with per-event outcome counters.
type InstrumentedQueue struct {
	inner   EventQueue
	metrics *metrics.QueueMetrics
}

func NewInstrumentedQueue(inner EventQueue, m *metrics.QueueMetrics) *InstrumentedQueue {
	return &InstrumentedQueue{inner: inner, metrics: m}
}

func (q *InstrumentedQueue) Enqueue(ctx context.Context, event Event) error {
	err := q.inner.Enqueue(ctx, event)
	q.record(err, event)
	return err
}

func (q *InstrumentedQueue) EnqueueInBatch(ctx context.Context, events ...Event) error {
	err := q.inner.EnqueueInBatch(ctx, events...)
	q.record(err, events...)
	return err
}

func (q *InstrumentedQueue) Close() error {
	return q.inner.Close()
}

func (q *InstrumentedQueue) record(err error, events ...Event) {
	for _, e := range events {
		if err != nil {
			q.metrics.Failure(e.Name())
			continue
		}
		q.metrics.Success(e.Name())
	}
}
