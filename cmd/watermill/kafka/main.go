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
	kafkaAdapter "github.com/mateusmacedo/go-mediator/pkg/infrastructure/kafka/adapter"
	validatorAdapter "github.com/mateusmacedo/go-mediator/pkg/infrastructure/validator/adapter"
	watermillAdapter "github.com/mateusmacedo/go-mediator/pkg/infrastructure/watermill/adapter"
	zapAdapter "github.com/mateusmacedo/go-mediator/pkg/infrastructure/zaplogger/adapter"
)

// Demonstrates the event relay over Kafka. Requires a broker reachable at the
// configured address (MEDIATOR_BROKER_KAFKA_BROKERS).
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	appLogger, err := zapAdapter.NewZapAppLogger("mediator-kafka", cfg.Log.Level)
	if err != nil {
		panic(err)
	}
	wmLogger := watermillAdapter.NewWatermillLoggerAdapter(appLogger)

	publisher, err := kafkaAdapter.NewKafkaPublisher(cfg.Broker.KafkaBrokers, wmLogger)
	if err != nil {
		panic(err)
	}
	defer publisher.Close()

	subscriber, err := kafkaAdapter.NewKafkaSubscriber(cfg.Broker.KafkaBrokers, cfg.Broker.ConsumerGroup, wmLogger)
	if err != nil {
		panic(err)
	}
	defer subscriber.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// create the topics up front so the relayed copies are not dropped
	if err := subscriber.SubscribeInitialize(userDomain.EventUserCreated); err != nil {
		panic(err)
	}
	if err := subscriber.SubscribeInitialize(userDomain.EventUserRenamed); err != nil {
		panic(err)
	}

	localBus := pkgInfra.NewLocalEventBus(appLogger)
	relayBus := watermillAdapter.NewRelayEventBus(localBus, publisher, appLogger)

	remoteBus := pkgInfra.NewLocalEventBus(appLogger)
	remoteBus.RegisterHandler(userDomain.EventUserCreated, userApp.NewAuditLogHandler(appLogger))
	remoteBus.RegisterHandler(userDomain.EventUserRenamed, userApp.NewAuditLogHandler(appLogger))
	if err := watermillAdapter.RelayIncoming(ctx, subscriber, userDomain.EventUserCreated, remoteBus, appLogger); err != nil {
		panic(err)
	}
	if err := watermillAdapter.RelayIncoming(ctx, subscriber, userDomain.EventUserRenamed, remoteBus, appLogger); err != nil {
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
		Email: "jane.roe@example.com",
		Name:  "Jane Roe",
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

	result, err = mediator.Send(ctx, userApp.RenameUserCommand{
		UserID: created.UserID,
		Name:   "Jane R. Roe",
	})
	if err != nil {
		appLogger.Error(ctx, "failed to rename user", map[string]interface{}{
			"error": err,
		})
		return
	}
	appLogger.Info(ctx, "user renamed", map[string]interface{}{
		"result": result.Data,
	})

	// wait for the consumer group to drain the relayed events
	time.Sleep(10 * time.Second)
}
