package eventbus

import "context"

// Event is anything carried on the bus; Type selects the handlers.
type Event interface {
	Type() string
}

// HandlerFunc handles a single event.
type HandlerFunc func(ctx context.Context, e Event) error

// Bus defines the contract for publishing and subscribing to events.
type Bus interface {
	Register(eventType string, handler HandlerFunc)
	Emit(ctx context.Context, event Event) error
}
