package infrastructure

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mateusmacedo/go-mediator/pkg/application"
)

func sessionContext(session application.Session) context.Context {
	return application.ContextWithSession(context.Background(), session)
}

func TestTransactionBehaviorWrapsCommandInScope(t *testing.T) {
	session := &fakeSession{}
	behavior := NewTransactionBehavior(application.ContextSessionProvider{}, &capturingLogger{})

	result, err := behavior.Handle(sessionContext(session), renameCommand{}, func(ctx context.Context) (any, error) {
		return "done", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "done", result)
	assert.Equal(t, 1, session.beginCalls)
	assert.True(t, session.scope.committed)
	assert.False(t, session.scope.rolledBack)
}

func TestTransactionBehaviorRollsBackScopeOnFailure(t *testing.T) {
	session := &fakeSession{}
	behavior := NewTransactionBehavior(application.ContextSessionProvider{}, &capturingLogger{})
	handlerErr := errors.New("handler failed")

	_, err := behavior.Handle(sessionContext(session), renameCommand{}, func(ctx context.Context) (any, error) {
		return nil, handlerErr
	})

	assert.ErrorIs(t, err, handlerErr)
	assert.True(t, session.scope.rolledBack)
	assert.False(t, session.scope.committed)
	// the root transaction is untouched either way
	assert.False(t, session.rolledBack)
	assert.False(t, session.committed)
}

func TestTransactionBehaviorKeepsOriginalErrorWhenRollbackFails(t *testing.T) {
	logger := &capturingLogger{}
	session := &fakeSession{scope: &fakeScope{rollbackErr: errors.New("rollback broke")}}
	behavior := NewTransactionBehavior(application.ContextSessionProvider{}, logger)
	handlerErr := errors.New("handler failed")

	_, err := behavior.Handle(sessionContext(session), renameCommand{}, func(ctx context.Context) (any, error) {
		return nil, handlerErr
	})

	assert.ErrorIs(t, err, handlerErr)
	assert.True(t, logger.hasMessage("error", "nested transaction rollback failed"))
}

func TestTransactionBehaviorSkipsQueries(t *testing.T) {
	session := &fakeSession{}
	behavior := NewTransactionBehavior(application.ContextSessionProvider{}, &capturingLogger{})

	result, err := behavior.Handle(sessionContext(session), countQuery{}, func(ctx context.Context) (any, error) {
		return 3, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, result)
	assert.Equal(t, 0, session.beginCalls)
}

func TestTransactionBehaviorRunsBareWithoutAmbientSession(t *testing.T) {
	logger := &capturingLogger{}
	behavior := NewTransactionBehavior(application.ContextSessionProvider{}, logger)
	nextRan := false

	result, err := behavior.Handle(context.Background(), renameCommand{}, func(ctx context.Context) (any, error) {
		nextRan = true
		return "bare", nil
	})

	require.NoError(t, err)
	assert.True(t, nextRan)
	assert.Equal(t, "bare", result)
	assert.True(t, logger.hasMessage("debug", "no ambient session, dispatching command without transaction scope"))
}

func TestTransactionBehaviorPropagatesBeginError(t *testing.T) {
	beginErr := errors.New("savepoint refused")
	session := &fakeSession{beginErr: beginErr}
	behavior := NewTransactionBehavior(application.ContextSessionProvider{}, &capturingLogger{})
	nextRan := false

	_, err := behavior.Handle(sessionContext(session), renameCommand{}, func(ctx context.Context) (any, error) {
		nextRan = true
		return nil, nil
	})

	assert.ErrorIs(t, err, beginErr)
	assert.False(t, nextRan)
}

func TestTransactionBehaviorReportsCommitError(t *testing.T) {
	commitErr := errors.New("savepoint release refused")
	session := &fakeSession{scope: &fakeScope{commitErr: commitErr}}
	behavior := NewTransactionBehavior(application.ContextSessionProvider{}, &capturingLogger{})

	_, err := behavior.Handle(sessionContext(session), renameCommand{}, func(ctx context.Context) (any, error) {
		return "done", nil
	})

	assert.ErrorIs(t, err, commitErr)
}
