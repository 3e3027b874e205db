package infrastructure

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mateusmacedo/go-mediator/pkg/application"
	"github.com/mateusmacedo/go-mediator/pkg/domain"
)

type fakeValidator struct {
	failures []application.FieldError
}

func (v *fakeValidator) Validate(request domain.Request) []application.FieldError {
	return v.failures
}

func TestValidationBehaviorPassesValidRequest(t *testing.T) {
	behavior := NewValidationBehavior(&fakeValidator{}, &capturingLogger{})
	nextRan := false

	result, err := behavior.Handle(context.Background(), renameCommand{}, func(ctx context.Context) (any, error) {
		nextRan = true
		return "ok", nil
	})

	require.NoError(t, err)
	assert.True(t, nextRan)
	assert.Equal(t, "ok", result)
}

func TestValidationBehaviorRejectsInvalidRequest(t *testing.T) {
	validator := &fakeValidator{failures: []application.FieldError{
		{Field: "email", Message: "is required", Rule: "required"},
		{Field: "name", Message: "must be at least 2", Rule: "min"},
	}}
	logger := &capturingLogger{}
	behavior := NewValidationBehavior(validator, logger)
	nextRan := false

	_, err := behavior.Handle(context.Background(), renameCommand{}, func(ctx context.Context) (any, error) {
		nextRan = true
		return nil, nil
	})

	assert.False(t, nextRan)

	var validationErr *application.ValidationFailure
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "thing.rename", validationErr.Request)
	require.Len(t, validationErr.Fields, 2)
	assert.Equal(t, "email", validationErr.Fields[0].Field)
	assert.Equal(t, "required", validationErr.Fields[0].Rule)
	assert.True(t, logger.hasMessage("info", "request rejected by validation"))
}
