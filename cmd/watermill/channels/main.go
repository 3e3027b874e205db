package main

import (
	"context"
	"time"

	"github.com/mateusmacedo/go-mediator/internal/user"
	userApp "github.com/mateusmacedo/go-mediator/internal/user/application"
	userDomain "github.com/mateusmacedo/go-mediator/internal/user/domain"
	userInfra "github.com/mateusmacedo/go-mediator/internal/user/infrastructure"
	pkgApp "github.com/mateusmacedo/go-mediator/pkg/application"
	pkgInfra "github.com/mateusmacedo/go-mediator/pkg/infrastructure"
	channelsAdapter "github.com/mateusmacedo/go-mediator/pkg/infrastructure/channels/adapter"
	validatorAdapter "github.com/mateusmacedo/go-mediator/pkg/infrastructure/validator/adapter"
	watermillAdapter "github.com/mateusmacedo/go-mediator/pkg/infrastructure/watermill/adapter"
	zapAdapter "github.com/mateusmacedo/go-mediator/pkg/infrastructure/zaplogger/adapter"
)

// Demonstrates the event relay over the in-memory broker: commands dispatched
// here fan out to local subscribers and to a second bus fed from the broker,
// standing in for another process.
func main() {
	appLogger, err := zapAdapter.NewZapAppLogger("mediator-channels", "debug")
	if err != nil {
		panic(err)
	}
	wmLogger := watermillAdapter.NewWatermillLoggerAdapter(appLogger)

	pubSub := channelsAdapter.NewGoChannelPubSub(wmLogger)
	defer pubSub.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	localBus := pkgInfra.NewLocalEventBus(appLogger)
	relayBus := watermillAdapter.NewRelayEventBus(localBus, pubSub, appLogger)

	remoteBus := pkgInfra.NewLocalEventBus(appLogger)
	remoteBus.RegisterHandler(userDomain.EventUserCreated, userApp.NewAuditLogHandler(appLogger))
	if err := watermillAdapter.RelayIncoming(ctx, pubSub, userDomain.EventUserCreated, remoteBus, appLogger); err != nil {
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
		Email: "john.doe@example.com",
		Name:  "John Doe",
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

	// let the broker deliver the relayed copy
	time.Sleep(1 * time.Second)

	result, err = mediator.Send(ctx, userApp.GetUserQuery{UserID: created.UserID})
	if err != nil {
		appLogger.Error(ctx, "failed to get user", map[string]interface{}{
			"error": err,
		})
		return
	}
	appLogger.Info(ctx, "user fetched", map[string]interface{}{
		"user": result.Data,
	})

	// a second create with the same email surfaces the translated conflict
	if _, err := mediator.Send(ctx, userApp.CreateUserCommand{
		Email: "john.doe@example.com",
		Name:  "John Doe Again",
	}); err != nil {
		appLogger.Info(ctx, "duplicate create rejected", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
