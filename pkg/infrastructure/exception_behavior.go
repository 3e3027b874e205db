package infrastructure

import (
	"context"
	"errors"
	"net/http"

	"github.com/mateusmacedo/go-mediator/pkg/application"
	"github.com/mateusmacedo/go-mediator/pkg/domain"
)

// statusByKind maps each translated error kind to its transport status class.
// Kinds absent from the table fall back to a generic client error.
var statusByKind = map[domain.ErrorKind]int{
	domain.ErrorKindNotFound:       http.StatusNotFound,
	domain.ErrorKindBusinessRule:   http.StatusUnprocessableEntity,
	domain.ErrorKindValidation:     http.StatusBadRequest,
	domain.ErrorKindConflict:       http.StatusConflict,
	domain.ErrorKindAuthentication: http.StatusUnauthorized,
}

type exceptionBehavior struct {
	logger application.AppLogger
}

// NewExceptionBehavior translates errors escaping the inner chain into
// application errors safe to hand to a transport edge. Domain errors keep
// their code and message; anything unrecognized is reported as an internal
// error with its detail suppressed.
func NewExceptionBehavior(logger application.AppLogger) application.Behavior {
	return &exceptionBehavior{logger: logger}
}

func (b *exceptionBehavior) Handle(ctx context.Context, request domain.Request, next application.Next) (any, error) {
	result, err := next(ctx)
	if err == nil {
		return result, nil
	}
	return nil, b.translate(ctx, request, err)
}

func (b *exceptionBehavior) translate(ctx context.Context, request domain.Request, err error) error {
	var appErr *application.Error
	if errors.As(err, &appErr) {
		return appErr
	}

	var validationErr *application.ValidationFailure
	if errors.As(err, &validationErr) {
		return validationErr
	}

	var domErr *domain.Error
	if errors.As(err, &domErr) {
		status, found := statusByKind[domErr.Kind]
		if !found {
			status = http.StatusBadRequest
		}
		application.LogInfo(ctx, b.logger, "domain error translated", map[string]interface{}{
			"request": request.RequestName(),
			"code":    domErr.Code,
			"status":  status,
		})
		return application.NewError(domErr.Code, domErr.Message, status).WithDetails(domErr.Details)
	}

	application.LogError(ctx, b.logger, "unexpected error during dispatch", err, map[string]interface{}{
		"request": request.RequestName(),
	})
	return application.NewError(application.CodeInternalError, "An unexpected error occurred", http.StatusInternalServerError)
}
