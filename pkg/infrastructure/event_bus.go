package infrastructure

import (
	"context"
	"sync"

	"go.uber.org/multierr"

	"github.com/mateusmacedo/go-mediator/pkg/application"
	"github.com/mateusmacedo/go-mediator/pkg/domain"
)

type localEventBus struct {
	handlers map[string][]application.EventHandler
	mu       sync.RWMutex
	logger   application.AppLogger
}

// NewLocalEventBus creates an in-process bus that runs subscribers in
// registration order on the publisher's goroutine.
func NewLocalEventBus(logger application.AppLogger) application.EventBus {
	return &localEventBus{
		handlers: make(map[string][]application.EventHandler),
		logger:   logger,
	}
}

func (bus *localEventBus) RegisterHandler(eventName string, handler application.EventHandler) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.handlers[eventName] = append(bus.handlers[eventName], handler)
}

// Publish delivers the event to every subscriber exactly once. A failing
// subscriber does not stop the remaining ones; all failures are aggregated
// into the returned error.
func (bus *localEventBus) Publish(ctx context.Context, event domain.Event) error {
	bus.mu.RLock()
	registered := bus.handlers[event.Name]
	handlers := make([]application.EventHandler, len(registered))
	copy(handlers, registered)
	bus.mu.RUnlock()

	if len(handlers) == 0 {
		bus.logger.Info(ctx, "no handler registered for event", map[string]interface{}{
			"event_name": event.Name,
		})
		return nil
	}

	var errs error
	for i, handler := range handlers {
		if err := handler.Handle(ctx, event); err != nil {
			errs = multierr.Append(errs, err)
			application.LogError(ctx, bus.logger, "event subscriber failed", err, map[string]interface{}{
				"event_name": event.Name,
				"event_id":   event.ID,
				"subscriber": i,
			})
			continue
		}
		application.LogTrace(ctx, bus.logger, "event delivered", map[string]interface{}{
			"event_name": event.Name,
			"event_id":   event.ID,
			"subscriber": i,
		})
	}
	return errs
}
