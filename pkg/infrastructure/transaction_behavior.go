package infrastructure

import (
	"context"

	"github.com/mateusmacedo/go-mediator/pkg/application"
	"github.com/mateusmacedo/go-mediator/pkg/domain"
)

type transactionBehavior struct {
	provider application.SessionProvider
	logger   application.AppLogger
}

// NewTransactionBehavior wraps command handlers in a nested transaction scope
// on the ambient session. Queries pass through untouched, and so do commands
// dispatched outside any session.
func NewTransactionBehavior(provider application.SessionProvider, logger application.AppLogger) application.Behavior {
	return &transactionBehavior{
		provider: provider,
		logger:   logger,
	}
}

func (b *transactionBehavior) Handle(ctx context.Context, request domain.Request, next application.Next) (any, error) {
	if request.RequestKind() != domain.KindCommand {
		return next(ctx)
	}

	session, found := b.provider.Current(ctx)
	if !found {
		application.LogDebug(ctx, b.logger, "no ambient session, dispatching command without transaction scope", map[string]interface{}{
			"request": request.RequestName(),
		})
		return next(ctx)
	}

	scope, err := session.BeginNested(ctx)
	if err != nil {
		application.LogError(ctx, b.logger, "failed to begin nested transaction", err, map[string]interface{}{
			"request": request.RequestName(),
		})
		return nil, err
	}

	result, err := next(ctx)
	if err != nil {
		if rollbackErr := scope.Rollback(); rollbackErr != nil {
			application.LogError(ctx, b.logger, "nested transaction rollback failed", rollbackErr, map[string]interface{}{
				"request": request.RequestName(),
			})
		}
		return nil, err
	}

	if err := scope.Commit(); err != nil {
		application.LogError(ctx, b.logger, "nested transaction commit failed", err, map[string]interface{}{
			"request": request.RequestName(),
		})
		return nil, err
	}
	return result, nil
}
