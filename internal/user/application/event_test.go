package application

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mateusmacedo/go-mediator/internal/user/domain"
	pkgDomain "github.com/mateusmacedo/go-mediator/pkg/domain"
)

type memoryLogger struct {
	mu      sync.Mutex
	entries []struct {
		msg    string
		fields map[string]interface{}
	}
}

func (l *memoryLogger) record(msg string, fields map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, struct {
		msg    string
		fields map[string]interface{}
	}{msg: msg, fields: fields})
}

func (l *memoryLogger) Info(ctx context.Context, msg string, fields map[string]interface{}) {
	l.record(msg, fields)
}

func (l *memoryLogger) Debug(ctx context.Context, msg string, fields map[string]interface{}) {
	l.record(msg, fields)
}

func (l *memoryLogger) Error(ctx context.Context, msg string, fields map[string]interface{}) {
	l.record(msg, fields)
}

func (l *memoryLogger) Trace(ctx context.Context, msg string, fields map[string]interface{}) {
	l.record(msg, fields)
}

func (l *memoryLogger) find(msg string) (map[string]interface{}, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, entry := range l.entries {
		if entry.msg == msg {
			return entry.fields, true
		}
	}
	return nil, false
}

func TestWelcomeEmailHandlerQueuesForNewUser(t *testing.T) {
	logger := &memoryLogger{}
	handler := NewWelcomeEmailHandler(logger)

	event := pkgDomain.NewEvent(domain.EventUserCreated, "u-1", domain.UserCreatedPayload{
		UserID: "u-1",
		Email:  "jane@example.com",
		Name:   "Jane Roe",
	})

	require.NoError(t, handler.Handle(context.Background(), event))

	fields, ok := logger.find("welcome email queued")
	require.True(t, ok)
	assert.Equal(t, "jane@example.com", fields["email"])
}

func TestWelcomeEmailHandlerSkipsForeignPayload(t *testing.T) {
	logger := &memoryLogger{}
	handler := NewWelcomeEmailHandler(logger)

	event := pkgDomain.NewEvent(domain.EventUserCreated, "u-1", map[string]interface{}{
		"email": "jane@example.com",
	})

	require.NoError(t, handler.Handle(context.Background(), event))

	_, queued := logger.find("welcome email queued")
	assert.False(t, queued)
	_, skipped := logger.find("welcome email skipped, unexpected payload")
	assert.True(t, skipped)
}

func TestAuditLogHandlerRecordsEveryEvent(t *testing.T) {
	logger := &memoryLogger{}
	handler := NewAuditLogHandler(logger)

	event := pkgDomain.NewEvent(domain.EventUserRenamed, "u-1", domain.UserRenamedPayload{
		UserID:  "u-1",
		OldName: "Jane",
		NewName: "Janet",
	})

	require.NoError(t, handler.Handle(context.Background(), event))

	fields, ok := logger.find("audit entry recorded")
	require.True(t, ok)
	assert.Equal(t, domain.EventUserRenamed, fields["event_name"])
	assert.Equal(t, "u-1", fields["aggregate_id"])
}

func TestAdminNotifyHandlerOnlyReactsToSignups(t *testing.T) {
	logger := &memoryLogger{}
	handler := NewAdminNotifyHandler(logger)

	renamed := pkgDomain.NewEvent(domain.EventUserRenamed, "u-1", domain.UserRenamedPayload{UserID: "u-1"})
	require.NoError(t, handler.Handle(context.Background(), renamed))
	_, notified := logger.find("admin notified of new user")
	assert.False(t, notified)

	created := pkgDomain.NewEvent(domain.EventUserCreated, "u-2", domain.UserCreatedPayload{UserID: "u-2", Name: "Sam"})
	require.NoError(t, handler.Handle(context.Background(), created))
	fields, ok := logger.find("admin notified of new user")
	require.True(t, ok)
	assert.Equal(t, "u-2", fields["user_id"])
}
