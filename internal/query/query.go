// Package query holds the read-side use cases of the order core. Queries go
// through the same single-handler bus as commands; results are normalized so
// callers never see a nil collection.
package query

import (
	"context"

	"github.com/hdev14/store/internal/mediator"
)

// Bus is the request/response dispatch the queries delegate to.
type Bus interface {
	Send(ctx context.Context, msg mediator.Message) (any, error)
}

// Execute dispatches the query and returns the handler's result as T. An
// absent result comes back as T's zero value instead of a typed nil.
func Execute[T any](ctx context.Context, bus Bus, q mediator.Message) (T, error) {
	var zero T

	res, err := bus.Send(ctx, q)
	if err != nil {
		return zero, err
	}
	if res == nil {
		return zero, nil
	}

	out, ok := res.(T)
	if !ok {
		return zero, &mediator.Error{MessageName: q.Name(), Reason: "handler returned unexpected result type"}
	}
	return out, nil
}
