package mediator

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Message is anything that can be dispatched through a bus. Its name keys
// the handler lookup and doubles as the queue job/topic name for events.
type Message interface {
	Name() string
}

// Handler serves exactly one message name on the request/response bus.
// Registration compares handler values, so handlers are usually pointers
// to the struct carrying their dependencies.
type Handler interface {
	Handle(ctx context.Context, msg Message) (any, error)
}

// HandlerFunc adapts a plain function to Handler. Func values carry no
// usable identity, so a HandlerFunc never counts as "the same handler"
// on re-registration.
type HandlerFunc func(ctx context.Context, msg Message) (any, error)

func (f HandlerFunc) Handle(ctx context.Context, msg Message) (any, error) {
	return f(ctx, msg)
}

// EventHandler reacts to a broadcast message on the fan-out bus.
type EventHandler func(ctx context.Context, msg Message) error

// Error reports a wiring defect: dispatching a message nobody handles, or
// binding two different handlers to the same name. It is fatal configuration,
// not a user-facing failure, and should abort startup rather than be retried.
type Error struct {
	MessageName string
	Reason      string
}

func (e *Error) Error() string {
	return fmt.Sprintf("mediator: %s: %s", e.MessageName, e.Reason)
}

// Mediator is the single-handler request/response bus used for commands and
// queries. Each name resolves to exactly one handler.
type Mediator struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

func New() *Mediator {
	return &Mediator{handlers: make(map[string]Handler)}
}

// Register binds handler to name. Re-registering the same handler value
// under the same name is a no-op; any other registration of a taken name
// is rejected. Two instances of the same handler type are different
// handlers.
func (m *Mediator) Register(name string, handler Handler) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.handlers[name]; ok {
		if reflect.TypeOf(handler).Comparable() && existing == handler {
			return nil
		}
		return &Error{MessageName: name, Reason: "another handler is already registered"}
	}

	m.handlers[name] = handler
	return nil
}

// Send resolves the one handler registered for the message's name and
// returns its result.
func (m *Mediator) Send(ctx context.Context, msg Message) (any, error) {
	m.mu.RLock()
	handler, ok := m.handlers[msg.Name()]
	m.mu.RUnlock()

	if !ok {
		return nil, &Error{MessageName: msg.Name(), Reason: "no handler registered"}
	}
	return handler.Handle(ctx, msg)
}

// EventMediator is the fan-out bus for domain-event subscribers. Every
// handler registered for a name is invoked on publish.
type EventMediator struct {
	mu       sync.RWMutex
	handlers map[string][]EventHandler
}

func NewEventMediator() *EventMediator {
	return &EventMediator{handlers: make(map[string][]EventHandler)}
}

func (m *EventMediator) Register(name string, handler EventHandler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[name] = append(m.handlers[name], handler)
}

// Publish invokes all handlers registered for the message's name
// concurrently and waits for them as one unit. If any handler fails the
// whole dispatch fails; there is no per-handler isolation, so subscribers
// must be idempotent under redelivery.
func (m *EventMediator) Publish(ctx context.Context, msg Message) error {
	m.mu.RLock()
	handlers := m.handlers[msg.Name()]
	m.mu.RUnlock()

	g, ctx := errgroup.WithContext(ctx)
	for _, handler := range handlers {
		g.Go(func() error {
			return handler(ctx, msg)
		})
	}
	return g.Wait()
}
