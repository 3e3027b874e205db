package infrastructure

import (
	"context"

	"github.com/mateusmacedo/go-mediator/pkg/application"
	"github.com/mateusmacedo/go-mediator/pkg/domain"
)

type validationBehavior struct {
	validator application.StructuralValidator
	logger    application.AppLogger
}

// NewValidationBehavior rejects structurally invalid requests before any
// other behavior or the handler runs.
func NewValidationBehavior(validator application.StructuralValidator, logger application.AppLogger) application.Behavior {
	return &validationBehavior{
		validator: validator,
		logger:    logger,
	}
}

func (b *validationBehavior) Handle(ctx context.Context, request domain.Request, next application.Next) (any, error) {
	failures := b.validator.Validate(request)
	if len(failures) > 0 {
		application.LogInfo(ctx, b.logger, "request rejected by validation", map[string]interface{}{
			"request":     request.RequestName(),
			"field_count": len(failures),
		})
		return nil, application.NewValidationFailure(request.RequestName(), failures)
	}
	return next(ctx)
}
