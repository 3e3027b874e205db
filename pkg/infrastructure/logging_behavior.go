package infrastructure

import (
	"context"
	"time"

	"github.com/mateusmacedo/go-mediator/pkg/application"
	"github.com/mateusmacedo/go-mediator/pkg/domain"
)

type loggingBehavior struct {
	logger application.AppLogger
}

// NewLoggingBehavior records start, outcome and duration of every dispatch.
// It never swallows or rewrites the error flowing through it.
func NewLoggingBehavior(logger application.AppLogger) application.Behavior {
	return &loggingBehavior{logger: logger}
}

func (b *loggingBehavior) Handle(ctx context.Context, request domain.Request, next application.Next) (any, error) {
	start := time.Now()
	application.LogDebug(ctx, b.logger, "handling request", map[string]interface{}{
		"request": request.RequestName(),
		"kind":    request.RequestKind().String(),
	})

	result, err := next(ctx)
	durationMs := time.Since(start).Milliseconds()

	if err != nil {
		application.LogError(ctx, b.logger, "request failed", err, map[string]interface{}{
			"request":     request.RequestName(),
			"kind":        request.RequestKind().String(),
			"duration_ms": durationMs,
		})
		return result, err
	}

	application.LogInfo(ctx, b.logger, "request handled", map[string]interface{}{
		"request":     request.RequestName(),
		"kind":        request.RequestKind().String(),
		"duration_ms": durationMs,
	})
	return result, nil
}
