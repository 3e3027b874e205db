package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mateusmacedo/go-mediator/pkg/domain"
)

type greetCommand struct {
	domain.Command
	Name string
}

func (greetCommand) RequestName() string { return "greet" }

type otherCommand struct {
	domain.Command
}

func (otherCommand) RequestName() string { return "other" }

func TestAdaptPassesTypedRequest(t *testing.T) {
	handler := AdaptFunc(func(ctx context.Context, command greetCommand) (string, error) {
		return "hello " + command.Name, nil
	})

	data, err := handler.Handle(context.Background(), greetCommand{Name: "world"})

	require.NoError(t, err)
	assert.Equal(t, "hello world", data)
}

func TestAdaptRejectsWrongRequestType(t *testing.T) {
	handler := AdaptFunc(func(ctx context.Context, command greetCommand) (string, error) {
		t.Fatal("handler must not run for a mismatched request")
		return "", nil
	})

	_, err := handler.Handle(context.Background(), otherCommand{})

	var configErr *ConfigurationError
	require.ErrorAs(t, err, &configErr)
	assert.Contains(t, configErr.Message, "greetCommand")
	assert.Contains(t, configErr.Message, "otherCommand")
}

func TestAdaptPropagatesHandlerError(t *testing.T) {
	wantErr := domain.NewEntityNotFound("Greeting", "g-1")
	handler := AdaptFunc(func(ctx context.Context, command greetCommand) (string, error) {
		return "", wantErr
	})

	_, err := handler.Handle(context.Background(), greetCommand{})

	assert.ErrorIs(t, err, wantErr)
}
