package main

import (
	"context"
	"time"

	"github.com/mateusmacedo/go-mediator/internal/config"
	"github.com/mateusmacedo/go-mediator/internal/user"
	userApp "github.com/mateusmacedo/go-mediator/internal/user/application"
	userDomain "github.com/mateusmacedo/go-mediator/internal/user/domain"
	userInfra "github.com/mateusmacedo/go-mediator/internal/user/infrastructure"
	pkgApp "github.com/mateusmacedo/go-mediator/pkg/application"
	pkgInfra "github.com/mateusmacedo/go-mediator/pkg/infrastructure"
	redisAdapter "github.com/mateusmacedo/go-mediator/pkg/infrastructure/redis/adapter"
	validatorAdapter "github.com/mateusmacedo/go-mediator/pkg/infrastructure/validator/adapter"
	watermillAdapter "github.com/mateusmacedo/go-mediator/pkg/infrastructure/watermill/adapter"
	zapAdapter "github.com/mateusmacedo/go-mediator/pkg/infrastructure/zaplogger/adapter"
)

// Demonstrates the event relay over Redis streams. Requires an instance
// reachable at the configured address (MEDIATOR_BROKER_REDIS_ADDR).
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	appLogger, err := zapAdapter.NewZapAppLogger("mediator-redis", cfg.Log.Level)
	if err != nil {
		panic(err)
	}
	wmLogger := watermillAdapter.NewWatermillLoggerAdapter(appLogger)

	client := redisAdapter.NewRedisClient(cfg.Broker.RedisAddr)
	defer client.Close()

	publisher, err := redisAdapter.NewRedisPublisher(client, wmLogger)
	if err != nil {
		panic(err)
	}
	defer publisher.Close()

	subscriber, err := redisAdapter.NewRedisSubscriber(client, cfg.Broker.ConsumerGroup, "relay-demo", wmLogger)
	if err != nil {
		panic(err)
	}
	defer subscriber.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	localBus := pkgInfra.NewLocalEventBus(appLogger)
	relayBus := watermillAdapter.NewRelayEventBus(localBus, publisher, appLogger)

	remoteBus := pkgInfra.NewLocalEventBus(appLogger)
	remoteBus.RegisterHandler(userDomain.EventUserCreated, userApp.NewAuditLogHandler(appLogger))
	if err := watermillAdapter.RelayIncoming(ctx, subscriber, userDomain.EventUserCreated, remoteBus, appLogger); err != nil {
		panic(err)
	}

	repository := userInfra.NewInMemoryUserRepository(appLogger)

	registry := pkgInfra.NewHandlerRegistry()
	mediator := pkgInfra.NewMediator(registry, appLogger,
		pkgInfra.NewValidationBehavior(validatorAdapter.NewStructValidator(), appLogger),
		pkgInfra.NewExceptionBehavior(appLogger),
		pkgInfra.NewTransactionBehavior(pkgApp.ContextSessionProvider{}, appLogger),
		pkgInfra.NewLoggingBehavior(appLogger),
	)

	if _, err := user.NewUserSlice(registry, mediator, relayBus, repository, pkgInfra.GenerateUUID, appLogger); err != nil {
		panic(err)
	}

	result, err := mediator.Send(ctx, userApp.CreateUserCommand{
		Email: "sam.low@example.com",
		Name:  "Sam Low",
	})
	if err != nil {
		appLogger.Error(ctx, "failed to create user", map[string]interface{}{
			"error": err,
		})
		return
	}
	created := result.Data.(userApp.CreateUserResult)
	appLogger.Info(ctx, "user created", map[string]interface{}{
		"user_id": created.UserID,
	})

	// an invalid request never reaches the handler
	if _, err := mediator.Send(ctx, userApp.CreateUserCommand{
		Email: "not-an-email",
		Name:  "X",
	}); err != nil {
		appLogger.Info(ctx, "invalid create rejected", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// wait for the consumer group to drain the relayed event
	time.Sleep(5 * time.Second)
}
