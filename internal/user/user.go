package user

import (
	"github.com/go-chi/chi/v5"

	"github.com/mateusmacedo/go-mediator/internal/user/application"
	"github.com/mateusmacedo/go-mediator/internal/user/domain"
	"github.com/mateusmacedo/go-mediator/internal/user/infrastructure"
	pkgApp "github.com/mateusmacedo/go-mediator/pkg/application"
	pkgDomain "github.com/mateusmacedo/go-mediator/pkg/domain"
	pkgInfra "github.com/mateusmacedo/go-mediator/pkg/infrastructure"
)

type UserSlice struct {
	httpHandler *infrastructure.UserHTTPHandler
}

// NewUserSlice registers the slice's handlers and subscribers. It fails when
// a binding is duplicated or missing, so wiring mistakes surface at boot.
func NewUserSlice(
	registry pkgInfra.HandlerRegistry,
	mediator pkgApp.Mediator,
	eventBus pkgApp.EventBus,
	repository domain.UserRepository,
	idGenerator pkgDomain.IDGenerator[string],
	logger pkgApp.AppLogger,
) (*UserSlice, error) {
	if err := pkgInfra.RegisterHandler(registry, application.NewCreateUserHandler(repository, eventBus, idGenerator, logger)); err != nil {
		return nil, err
	}
	if err := pkgInfra.RegisterHandler(registry, application.NewRenameUserHandler(repository, eventBus, logger)); err != nil {
		return nil, err
	}
	if err := pkgInfra.RegisterHandler(registry, application.NewGetUserHandler(repository, logger)); err != nil {
		return nil, err
	}
	if err := pkgInfra.RegisterHandler(registry, application.NewListUsersHandler(repository, logger)); err != nil {
		return nil, err
	}

	eventBus.RegisterHandler(domain.EventUserCreated, application.NewWelcomeEmailHandler(logger))
	eventBus.RegisterHandler(domain.EventUserCreated, application.NewAuditLogHandler(logger))
	eventBus.RegisterHandler(domain.EventUserCreated, application.NewAdminNotifyHandler(logger))
	eventBus.RegisterHandler(domain.EventUserRenamed, application.NewAuditLogHandler(logger))

	if err := registry.EnsureRegistered(application.RequestNames()...); err != nil {
		return nil, err
	}

	return &UserSlice{
		httpHandler: infrastructure.NewUserHTTPHandler(mediator, logger),
	}, nil
}

func (s *UserSlice) RegisterRoutes(router chi.Router) {
	s.httpHandler.RegisterRoutes(router)
}
