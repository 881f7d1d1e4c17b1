package queue

import "context"

// Event is a fact about a committed state change, delivered at-least-once to
// out-of-process consumers. Name is the job/topic name; the event struct
// itself is serialized as the payload.
type Event interface {
	Name() string
}

// EventQueue is the durable side channel the command handlers push domain
// events onto. Enqueue failures must never undo the aggregate mutation that
// already committed; callers log them and move on.
type EventQueue interface {
	Enqueue(ctx context.Context, event Event) error
	EnqueueInBatch(ctx context.Context, events ...Event) error
	Close() error
}

// Error wraps an enqueue or connection failure on the adapter.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return "queue: " + e.Op + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}
