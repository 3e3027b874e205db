package adapter

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/mateusmacedo/go-mediator/pkg/application"
	"github.com/mateusmacedo/go-mediator/pkg/infrastructure"
)

type gormSessionFactory struct {
	db     *gorm.DB
	logger application.AppLogger
}

// NewGormSessionFactory opens sessions backed by database transactions.
func NewGormSessionFactory(db *gorm.DB, logger application.AppLogger) application.SessionFactory {
	return &gormSessionFactory{
		db:     db,
		logger: logger,
	}
}

func (f *gormSessionFactory) OpenSession(ctx context.Context) (application.Session, error) {
	tx := f.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &gormSession{
		tx:     tx,
		logger: f.logger,
	}, nil
}

// gormSession wraps one open transaction. Instances serve a single request
// and are not safe for concurrent use.
type gormSession struct {
	tx     *gorm.DB
	logger application.AppLogger
	done   bool
}

func (s *gormSession) BeginNested(ctx context.Context) (application.TransactionScope, error) {
	if s.done {
		return nil, application.NewConfigurationError("cannot begin nested scope on finished session")
	}

	name := savepointName()
	if err := s.tx.SavePoint(name).Error; err != nil {
		return nil, err
	}
	application.LogDebug(ctx, s.logger, "savepoint created", map[string]interface{}{
		"savepoint": name,
	})
	return &gormScope{session: s, name: name}, nil
}

func (s *gormSession) Commit() error {
	if s.done {
		return application.NewConfigurationError("commit on finished session")
	}
	if err := s.tx.Commit().Error; err != nil {
		return err
	}
	s.done = true
	return nil
}

func (s *gormSession) Rollback() error {
	if s.done {
		return nil
	}
	s.done = true
	return s.tx.Rollback().Error
}

func (s *gormSession) Close() error {
	return s.Rollback()
}

// gormScope is one savepoint inside the session's transaction.
type gormScope struct {
	session  *gormSession
	name     string
	released bool
}

// Commit marks the scope complete. The savepoint itself dissolves when the
// enclosing transaction ends, so no statement is issued here.
func (sc *gormScope) Commit() error {
	if sc.released {
		return application.NewConfigurationError("scope %s already completed", sc.name)
	}
	sc.released = true
	return nil
}

func (sc *gormScope) Rollback() error {
	if sc.released {
		return application.NewConfigurationError("scope %s already completed", sc.name)
	}
	sc.released = true
	return sc.session.tx.RollbackTo(sc.name).Error
}

func savepointName() string {
	return "sp_" + strings.ReplaceAll(infrastructure.GenerateUUID(), "-", "")
}

// DBFromContext returns the handle repositories should use: the ambient
// session's transaction when one is bound, the base connection otherwise.
func DBFromContext(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if session, found := application.SessionFromContext(ctx); found {
		if gs, ok := session.(*gormSession); ok {
			return gs.tx
		}
	}
	return fallback
}
