package infrastructure

import (
	"context"

	"go.uber.org/multierr"

	"github.com/mateusmacedo/go-mediator/pkg/application"
)

// UnitOfWork owns one session for the duration of a request. It never commits
// on its own: the caller either calls Commit explicitly or the work is rolled
// back when the unit is closed.
type UnitOfWork interface {
	Session() application.Session
	Context(ctx context.Context) context.Context
	Commit() error
	Close() error
}

type unitOfWork struct {
	session   application.Session
	logger    application.AppLogger
	committed bool
	closed    bool
}

func BeginUnitOfWork(ctx context.Context, factory application.SessionFactory, logger application.AppLogger) (UnitOfWork, error) {
	session, err := factory.OpenSession(ctx)
	if err != nil {
		application.LogError(ctx, logger, "failed to open session", err, nil)
		return nil, err
	}
	return &unitOfWork{
		session: session,
		logger:  logger,
	}, nil
}

func (u *unitOfWork) Session() application.Session {
	return u.session
}

// Context binds the unit's session into the context as the ambient session
// seen by the transaction behavior.
func (u *unitOfWork) Context(ctx context.Context) context.Context {
	return application.ContextWithSession(ctx, u.session)
}

func (u *unitOfWork) Commit() error {
	if u.closed {
		return application.NewConfigurationError("commit on closed unit of work")
	}
	if err := u.session.Commit(); err != nil {
		return err
	}
	u.committed = true
	return nil
}

func (u *unitOfWork) Close() error {
	if u.closed {
		return nil
	}
	u.closed = true

	var errs error
	if !u.committed {
		if err := u.session.Rollback(); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	if err := u.session.Close(); err != nil {
		errs = multierr.Append(errs, err)
	}
	return errs
}
