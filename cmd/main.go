package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/mateusmacedo/go-mediator/internal/config"
	"github.com/mateusmacedo/go-mediator/internal/user"
	userInfra "github.com/mateusmacedo/go-mediator/internal/user/infrastructure"
	pkgApp "github.com/mateusmacedo/go-mediator/pkg/application"
	pkgInfra "github.com/mateusmacedo/go-mediator/pkg/infrastructure"
	gormAdapter "github.com/mateusmacedo/go-mediator/pkg/infrastructure/gormsession/adapter"
	validatorAdapter "github.com/mateusmacedo/go-mediator/pkg/infrastructure/validator/adapter"
	zapAdapter "github.com/mateusmacedo/go-mediator/pkg/infrastructure/zaplogger/adapter"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	appLogger, err := zapAdapter.NewZapAppLogger(cfg.App.Name, cfg.Log.Level)
	if err != nil {
		panic(err)
	}

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{TranslateError: true})
	if err != nil {
		appLogger.Error(ctx, "failed to connect to database", map[string]interface{}{
			"error": err,
		})
		panic(err)
	}

	userRepo, err := userInfra.NewGormUserRepository(db, appLogger)
	if err != nil {
		appLogger.Error(ctx, "failed to initialize user repository", map[string]interface{}{
			"error": err,
		})
		panic(err)
	}

	sessionFactory := gormAdapter.NewGormSessionFactory(db, appLogger)

	registry := pkgInfra.NewHandlerRegistry()
	eventBus := pkgInfra.NewLocalEventBus(appLogger)

	mediator := pkgInfra.NewMediator(registry, appLogger,
		pkgInfra.NewValidationBehavior(validatorAdapter.NewStructValidator(), appLogger),
		pkgInfra.NewExceptionBehavior(appLogger),
		pkgInfra.NewTransactionBehavior(pkgApp.ContextSessionProvider{}, appLogger),
		pkgInfra.NewLoggingBehavior(appLogger),
	)

	userSlice, err := user.NewUserSlice(registry, mediator, eventBus, userRepo, pkgInfra.GenerateUUID, appLogger)
	if err != nil {
		appLogger.Error(ctx, "failed to wire user slice", map[string]interface{}{
			"error": err,
		})
		panic(err)
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(gormAdapter.SessionMiddleware(sessionFactory, appLogger))

	userSlice.RegisterRoutes(router)

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		appLogger.Info(ctx, "signal received", map[string]interface{}{"signal": sig.String()})
		cancel()
	}()

	server := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	go func() {
		appLogger.Info(ctx, "server starting on "+cfg.Server.Addr, nil)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error(ctx, "failed to start server", map[string]interface{}{
				"error": err,
			})
			cancel()
		}
	}()

	<-ctx.Done()
	appLogger.Info(context.Background(), "shutting down server", nil)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error(context.Background(), "failed to shut down server", map[string]interface{}{
			"error": err,
		})
	}

	appLogger.Info(context.Background(), "server stopped", nil)
}
