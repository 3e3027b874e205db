package application

import (
	"context"

	"github.com/mateusmacedo/go-mediator/pkg/domain"
)

// RequestHandler executes the business logic bound to one request type. It is
// always the innermost link of the behavior chain.
type RequestHandler interface {
	Handle(ctx context.Context, request domain.Request) (any, error)
}

// RequestHandlerFunc adapts a plain function to RequestHandler.
type RequestHandlerFunc func(ctx context.Context, request domain.Request) (any, error)

func (f RequestHandlerFunc) Handle(ctx context.Context, request domain.Request) (any, error) {
	return f(ctx, request)
}

// Handler is the typed form implemented by concrete handlers.
type Handler[R domain.Request, T any] interface {
	Handle(ctx context.Context, request R) (T, error)
}

// Adapt wraps a typed handler for registration. A request of the wrong
// concrete type reaching the handler is a wiring defect and surfaces as a
// configuration error, never as a business failure.
func Adapt[R domain.Request, T any](handler Handler[R, T]) RequestHandler {
	return RequestHandlerFunc(func(ctx context.Context, request domain.Request) (any, error) {
		typed, ok := request.(R)
		if !ok {
			var want R
			return nil, NewConfigurationError(
				"handler bound to %T received request %T", want, request)
		}
		return handler.Handle(ctx, typed)
	})
}

// AdaptFunc wraps a typed handler function for registration.
func AdaptFunc[R domain.Request, T any](fn func(ctx context.Context, request R) (T, error)) RequestHandler {
	return Adapt[R, T](handlerFunc[R, T](fn))
}

type handlerFunc[R domain.Request, T any] func(ctx context.Context, request R) (T, error)

func (f handlerFunc[R, T]) Handle(ctx context.Context, request R) (T, error) {
	return f(ctx, request)
}
