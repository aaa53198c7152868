package outbox

import "context"

// Event is a domain event identified by name. Events here carry operational
// alerts (e.g. unrecorded charges), never request/response state.
type Event interface {
	EventName() string
}

// Handler consumes one published event. A handler error is logged by the
// dispatcher; events are not redelivered.
type Handler func(ctx context.Context, e Event) error

// Publisher enqueues an event for asynchronous fanout. Publishing must never
// block a response path beyond queue admission.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Subscriber registers a handler for an event name.
type Subscriber interface {
	Subscribe(eventName string, h Handler)
}
