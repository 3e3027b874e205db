package adapter

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/mateusmacedo/go-mediator/pkg/application"
	"github.com/mateusmacedo/go-mediator/pkg/infrastructure"
)

// SessionMiddleware opens a unit of work per request and binds its session
// into the request context. The work is committed when the handler responds
// with a success status and rolled back otherwise.
func SessionMiddleware(factory application.SessionFactory, logger application.AppLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			uow, err := infrastructure.BeginUnitOfWork(ctx, factory, logger)
			if err != nil {
				http.Error(w, "service unavailable", http.StatusServiceUnavailable)
				return
			}
			defer func() {
				if closeErr := uow.Close(); closeErr != nil {
					application.LogError(ctx, logger, "failed to close unit of work", closeErr, nil)
				}
			}()

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(uow.Context(ctx)))

			if ww.Status() < http.StatusBadRequest {
				if commitErr := uow.Commit(); commitErr != nil {
					application.LogError(ctx, logger, "failed to commit unit of work", commitErr, nil)
				}
			}
		})
	}
}
