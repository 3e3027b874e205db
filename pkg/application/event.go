package application

import (
	"context"

	"github.com/mateusmacedo/go-mediator/pkg/domain"
)

// EventHandler consumes one domain event. Handlers bound to the same event
// name run independently of each other.
type EventHandler interface {
	Handle(ctx context.Context, event domain.Event) error
}

// EventHandlerFunc adapts a function to EventHandler.
type EventHandlerFunc func(ctx context.Context, event domain.Event) error

func (f EventHandlerFunc) Handle(ctx context.Context, event domain.Event) error {
	return f(ctx, event)
}

// EventBus fans immutable fact records out to their subscribers.
type EventBus interface {
	// RegisterHandler binds a handler to an event name. Multiple handlers per
	// name are permitted and run in registration order.
	RegisterHandler(eventName string, handler EventHandler)
	// Publish dispatches the event to every bound handler and returns once
	// all of them have run.
	Publish(ctx context.Context, event domain.Event) error
}
