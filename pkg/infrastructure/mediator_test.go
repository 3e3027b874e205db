package infrastructure

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mateusmacedo/go-mediator/pkg/application"
	"github.com/mateusmacedo/go-mediator/pkg/domain"
)

type renameCommand struct {
	domain.Command
	Target string
}

func (renameCommand) RequestName() string { return "thing.rename" }

type countQuery struct {
	domain.Query
}

func (countQuery) RequestName() string { return "thing.count" }

func recordingBehavior(name string, trace *[]string) application.Behavior {
	return application.BehaviorFunc(func(ctx context.Context, request domain.Request, next application.Next) (any, error) {
		*trace = append(*trace, name+":before")
		result, err := next(ctx)
		*trace = append(*trace, name+":after")
		return result, err
	})
}

func TestMediatorDispatchesToExactHandler(t *testing.T) {
	registry := NewHandlerRegistry()
	logger := &capturingLogger{}

	require.NoError(t, RegisterHandlerFunc(registry, func(ctx context.Context, command renameCommand) (string, error) {
		return "renamed " + command.Target, nil
	}))
	require.NoError(t, RegisterHandlerFunc(registry, func(ctx context.Context, query countQuery) (int, error) {
		return 7, nil
	}))

	mediator := NewMediator(registry, logger)

	result, err := mediator.Send(context.Background(), renameCommand{Target: "a"})
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "renamed a", result.Data)

	result, err = mediator.Send(context.Background(), countQuery{})
	require.NoError(t, err)
	assert.Equal(t, 7, result.Data)
}

func TestMediatorMissingHandlerIsConfigurationError(t *testing.T) {
	registry := NewHandlerRegistry()
	logger := &capturingLogger{}
	mediator := NewMediator(registry, logger)

	result, err := mediator.Send(context.Background(), renameCommand{})

	var configErr *application.ConfigurationError
	require.ErrorAs(t, err, &configErr)
	assert.False(t, result.Success)
	assert.Equal(t, err, result.Error)
	assert.True(t, logger.hasMessage("error", "handler resolution failed"))
}

func TestMediatorRejectsNilRequest(t *testing.T) {
	mediator := NewMediator(NewHandlerRegistry(), &capturingLogger{})

	_, err := mediator.Send(context.Background(), nil)

	var configErr *application.ConfigurationError
	assert.ErrorAs(t, err, &configErr)
}

func TestBehaviorsWrapInRegistrationOrder(t *testing.T) {
	registry := NewHandlerRegistry()
	var trace []string

	require.NoError(t, RegisterHandlerFunc(registry, func(ctx context.Context, command renameCommand) (string, error) {
		trace = append(trace, "handler")
		return "", nil
	}))

	mediator := NewMediator(registry, &capturingLogger{},
		recordingBehavior("outer", &trace),
		recordingBehavior("middle", &trace),
		recordingBehavior("inner", &trace),
	)

	_, err := mediator.Send(context.Background(), renameCommand{})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"outer:before",
		"middle:before",
		"inner:before",
		"handler",
		"inner:after",
		"middle:after",
		"outer:after",
	}, trace)
}

func TestBehaviorShortCircuitSkipsHandler(t *testing.T) {
	registry := NewHandlerRegistry()
	handlerRan := false

	require.NoError(t, RegisterHandlerFunc(registry, func(ctx context.Context, command renameCommand) (string, error) {
		handlerRan = true
		return "", nil
	}))

	rejection := domain.NewBusinessRuleViolation("frozen", "renames are frozen")
	mediator := NewMediator(registry, &capturingLogger{},
		application.BehaviorFunc(func(ctx context.Context, request domain.Request, next application.Next) (any, error) {
			return nil, rejection
		}),
	)

	result, err := mediator.Send(context.Background(), renameCommand{})

	assert.ErrorIs(t, err, rejection)
	assert.False(t, result.Success)
	assert.False(t, handlerRan)
}

func TestBehaviorContextFlowsDownstream(t *testing.T) {
	type ctxKey struct{}
	registry := NewHandlerRegistry()

	require.NoError(t, RegisterHandlerFunc(registry, func(ctx context.Context, command renameCommand) (string, error) {
		value, _ := ctx.Value(ctxKey{}).(string)
		return value, nil
	}))

	mediator := NewMediator(registry, &capturingLogger{},
		application.BehaviorFunc(func(ctx context.Context, request domain.Request, next application.Next) (any, error) {
			return next(context.WithValue(ctx, ctxKey{}, "enriched"))
		}),
	)

	result, err := mediator.Send(context.Background(), renameCommand{})
	require.NoError(t, err)
	assert.Equal(t, "enriched", result.Data)
}

func TestConcurrentDispatchesAreIsolated(t *testing.T) {
	registry := NewHandlerRegistry()

	require.NoError(t, RegisterHandlerFunc(registry, func(ctx context.Context, command renameCommand) (string, error) {
		return command.Target, nil
	}))

	mediator := NewMediator(registry, &capturingLogger{},
		application.BehaviorFunc(func(ctx context.Context, request domain.Request, next application.Next) (any, error) {
			return next(ctx)
		}),
	)

	var wg sync.WaitGroup
	for _, target := range []string{"a", "b", "c", "d"} {
		wg.Add(1)
		go func(target string) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				result, err := mediator.Send(context.Background(), renameCommand{Target: target})
				if err != nil || result.Data != target {
					t.Errorf("dispatch for %q returned %v, %v", target, result.Data, err)
					return
				}
			}
		}(target)
	}
	wg.Wait()
}
