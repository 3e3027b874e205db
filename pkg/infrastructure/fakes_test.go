package infrastructure

import (
	"context"
	"sync"

	"github.com/mateusmacedo/go-mediator/pkg/application"
)

type logEntry struct {
	level  string
	msg    string
	fields map[string]interface{}
}

// capturingLogger records entries for assertions. Safe for concurrent use.
type capturingLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

func (l *capturingLogger) record(level string, msg string, fields map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, logEntry{level: level, msg: msg, fields: fields})
}

func (l *capturingLogger) Info(ctx context.Context, msg string, fields map[string]interface{}) {
	l.record("info", msg, fields)
}

func (l *capturingLogger) Debug(ctx context.Context, msg string, fields map[string]interface{}) {
	l.record("debug", msg, fields)
}

func (l *capturingLogger) Error(ctx context.Context, msg string, fields map[string]interface{}) {
	l.record("error", msg, fields)
}

func (l *capturingLogger) Trace(ctx context.Context, msg string, fields map[string]interface{}) {
	l.record("trace", msg, fields)
}

func (l *capturingLogger) hasMessage(level, msg string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, entry := range l.entries {
		if entry.level == level && entry.msg == msg {
			return true
		}
	}
	return false
}

type fakeScope struct {
	committed   bool
	rolledBack  bool
	commitErr   error
	rollbackErr error
}

func (s *fakeScope) Commit() error {
	s.committed = true
	return s.commitErr
}

func (s *fakeScope) Rollback() error {
	s.rolledBack = true
	return s.rollbackErr
}

type fakeSession struct {
	scope       *fakeScope
	beginCalls  int
	beginErr    error
	committed   bool
	rolledBack  bool
	closed      bool
	commitErr   error
	rollbackErr error
	closeErr    error
}

func (s *fakeSession) BeginNested(ctx context.Context) (application.TransactionScope, error) {
	s.beginCalls++
	if s.beginErr != nil {
		return nil, s.beginErr
	}
	if s.scope == nil {
		s.scope = &fakeScope{}
	}
	return s.scope, nil
}

func (s *fakeSession) Commit() error {
	if s.commitErr != nil {
		return s.commitErr
	}
	s.committed = true
	return nil
}

func (s *fakeSession) Rollback() error {
	s.rolledBack = true
	return s.rollbackErr
}

func (s *fakeSession) Close() error {
	s.closed = true
	return s.closeErr
}

type fakeSessionFactory struct {
	session *fakeSession
	openErr error
}

func (f *fakeSessionFactory) OpenSession(ctx context.Context) (application.Session, error) {
	if f.openErr != nil {
		return nil, f.openErr
	}
	if f.session == nil {
		f.session = &fakeSession{}
	}
	return f.session, nil
}
