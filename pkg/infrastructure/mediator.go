package infrastructure

import (
	"context"

	"github.com/mateusmacedo/go-mediator/pkg/application"
	"github.com/mateusmacedo/go-mediator/pkg/domain"
)

type mediator struct {
	resolver  application.HandlerResolver
	behaviors []application.Behavior
	logger    application.AppLogger
}

// NewMediator assembles the dispatch entry point. Behaviors run in the order
// given: the first behavior is the outermost wrapper around the handler.
func NewMediator(resolver application.HandlerResolver, logger application.AppLogger, behaviors ...application.Behavior) application.Mediator {
	return &mediator{
		resolver:  resolver,
		behaviors: behaviors,
		logger:    logger,
	}
}

func (m *mediator) Send(ctx context.Context, request domain.Request) (application.Result, error) {
	if request == nil {
		err := application.NewConfigurationError("cannot dispatch nil request")
		return application.Fail(err), err
	}

	handler, err := m.resolver.Resolve(request.RequestName())
	if err != nil {
		application.LogError(ctx, m.logger, "handler resolution failed", err, map[string]interface{}{
			"request": request.RequestName(),
		})
		return application.Fail(err), err
	}

	next := func(ctx context.Context) (any, error) {
		return handler.Handle(ctx, request)
	}
	for i := len(m.behaviors) - 1; i >= 0; i-- {
		behavior := m.behaviors[i]
		inner := next
		next = func(ctx context.Context) (any, error) {
			return behavior.Handle(ctx, request, inner)
		}
	}

	data, err := next(ctx)
	if err != nil {
		return application.Fail(err), err
	}
	return application.Ok(data), nil
}
