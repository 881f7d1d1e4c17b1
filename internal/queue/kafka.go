package queue

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
)

// KafkaQueue publishes events to kafka, one topic per event name. The writer
// retries a bounded number of times with a fixed backoff; delivery beyond
// that is the broker's at-least-once problem, not ours.
type KafkaQueue struct {
	writer *kafka.Writer
}

func NewKafkaQueue(brokers ...string) *KafkaQueue {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
		MaxAttempts:            5,
		WriteBackoffMin:        500 * time.Millisecond,
		WriteBackoffMax:        500 * time.Millisecond,
	}
	return &KafkaQueue{writer: w}
}

func (q *KafkaQueue) Enqueue(ctx context.Context, event Event) error {
	return q.EnqueueInBatch(ctx, event)
}

// EnqueueInBatch publishes all events as a single write so side effects
// triggered by one command reach the broker together.
func (q *KafkaQueue) EnqueueInBatch(ctx context.Context, events ...Event) error {
	msgs := make([]kafka.Message, 0, len(events))
	for _, e := range events {
		payload, err := json.Marshal(e)
		if err != nil {
			return &Error{Op: "marshal " + e.Name(), Err: err}
		}
		msgs = append(msgs, kafka.Message{
			Topic: e.Name(),
			Value: payload,
			Headers: []kafka.Header{
				{Key: "event_type", Value: []byte(e.Name())},
			},
		})
	}

	if err := q.writer.WriteMessages(ctx, msgs...); err != nil {
		return &Error{Op: "write messages", Err: err}
	}
	return nil
}

func (q *KafkaQueue) Close() error {
	if err := q.writer.Close(); err != nil {
		return &Error{Op: "close", Err: err}
	}
	return nil
}
