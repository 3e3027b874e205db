package application

import (
	"context"

	"github.com/mateusmacedo/go-mediator/pkg/domain"
)

// Next invokes the remainder of the behavior chain.
type Next func(ctx context.Context) (any, error)

// Behavior is one cross-cutting stage of the dispatch pipeline. A behavior
// inspects the request and errors crossing the boundary, never handler
// internals. Calling next is the behavior's choice; skipping it short-circuits
// the dispatch.
type Behavior interface {
	Handle(ctx context.Context, request domain.Request, next Next) (any, error)
}

// BehaviorFunc adapts a function to Behavior.
type BehaviorFunc func(ctx context.Context, request domain.Request, next Next) (any, error)

func (f BehaviorFunc) Handle(ctx context.Context, request domain.Request, next Next) (any, error) {
	return f(ctx, request, next)
}
