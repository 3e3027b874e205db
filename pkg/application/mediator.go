package application

import (
	"context"

	"github.com/mateusmacedo/go-mediator/pkg/domain"
)

// Mediator is the sole dispatch entry point: it routes a request through the
// behavior chain to its resolved handler.
type Mediator interface {
	Send(ctx context.Context, request domain.Request) (Result, error)
}

// HandlerResolver maps a request name to the handler responsible for it.
type HandlerResolver interface {
	Resolve(requestName string) (RequestHandler, error)
}
