package application

import "context"

// TransactionScope is one nested rollback scope (a savepoint) inside an open
// session.
type TransactionScope interface {
	// Commit releases the scope, keeping its work as part of the enclosing
	// transaction.
	Commit() error
	// Rollback reverts the session to the state captured when the scope was
	// opened, leaving the enclosing transaction usable.
	Rollback() error
}

// Session is one ambient database session: exactly one is visible to all
// collaborators within a dispatch context.
type Session interface {
	// BeginNested opens a savepoint scope inside the session.
	BeginNested(ctx context.Context) (TransactionScope, error)
	// Commit commits the session's root transaction.
	Commit() error
	// Rollback rolls back the session's root transaction.
	Rollback() error
	// Close releases the session's underlying resources. Closing an
	// uncommitted session must not persist its work.
	Close() error
}

// SessionFactory opens fresh sessions.
type SessionFactory interface {
	OpenSession(ctx context.Context) (Session, error)
}

// SessionProvider resolves the ambient session of a dispatch context, if any.
type SessionProvider interface {
	Current(ctx context.Context) (Session, bool)
}

type sessionContextKey struct{}

// ContextWithSession binds a session to the context as the ambient session of
// the dispatch scope. The binding is per-context; there is no process-global
// session.
func ContextWithSession(ctx context.Context, session Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, session)
}

// SessionFromContext returns the ambient session bound to the context.
func SessionFromContext(ctx context.Context) (Session, bool) {
	session, ok := ctx.Value(sessionContextKey{}).(Session)
	return session, ok
}

// ContextSessionProvider resolves the ambient session from the context. It is
// the default provider used by the transaction behavior.
type ContextSessionProvider struct{}

func (ContextSessionProvider) Current(ctx context.Context) (Session, bool) {
	return SessionFromContext(ctx)
}
