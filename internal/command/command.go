// Package command holds the write-side use cases of the order core. Each
// command is a validated payload dispatched through the single-handler bus
// to the handler that mutates the aggregate and publishes side effects.
package command

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"

	"github.com/hdev14/store/internal/mediator"
	"github.com/hdev14/store/internal/queue"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Bus is the request/response dispatch the envelopes delegate to.
type Bus interface {
	Send(ctx context.Context, msg mediator.Message) (any, error)
}

// FieldViolation is one failed validation rule on one payload field.
type FieldViolation struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// ValidationError aggregates every violation found on a command payload.
// Validation does not fail fast: the caller gets the full list.
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d violation(s)", len(e.Violations))
}

// Send validates the command payload and dispatches it, returning the
// handler's result as T.
func Send[T any](ctx context.Context, bus Bus, cmd mediator.Message) (T, error) {
	var zero T

	if err := validate.Struct(cmd); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return zero, err
		}
		violations := make([]FieldViolation, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			violations = append(violations, FieldViolation{Field: fe.Field(), Rule: fe.Tag()})
		}
		return zero, &ValidationError{Violations: violations}
	}

	res, err := bus.Send(ctx, cmd)
	if err != nil {
		return zero, err
	}

	out, ok := res.(T)
	if res != nil && !ok {
		return zero, fmt.Errorf("unexpected result type %T for %s", res, cmd.Name())
	}
	return out, nil
}

// enqueue pushes the events the command produced onto the durable queue.
// The aggregate mutation is already persisted at this point, so a failed
// enqueue is logged and swallowed, never surfaced to the caller.
func enqueue(ctx context.Context, q queue.EventQueue, events ...queue.Event) {
	if err := q.EnqueueInBatch(ctx, events...); err != nil {
		log.Printf("failed to enqueue events: %v", err)
	}
}

// broadcast fans the event out to in-process subscribers. Subscriber
// failures are logged; they cannot fail the command.
func broadcast(ctx context.Context, bus *mediator.EventMediator, msg mediator.Message) {
	if bus == nil {
		return
	}
	if err := bus.Publish(ctx, msg); err != nil {
		log.Printf("event subscriber error for %s: %v", msg.Name(), err)
	}
}
