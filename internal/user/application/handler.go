package application

import (
	"context"

	"github.com/mateusmacedo/go-mediator/internal/user/domain"
	pkgApp "github.com/mateusmacedo/go-mediator/pkg/application"
	pkgDomain "github.com/mateusmacedo/go-mediator/pkg/domain"
)

const defaultListLimit = 20

type createUserHandler struct {
	repository  domain.UserRepository
	eventBus    pkgApp.EventBus
	idGenerator pkgDomain.IDGenerator[string]
	logger      pkgApp.AppLogger
}

func NewCreateUserHandler(repo domain.UserRepository, eventBus pkgApp.EventBus, idGenerator pkgDomain.IDGenerator[string], logger pkgApp.AppLogger) pkgApp.Handler[CreateUserCommand, CreateUserResult] {
	return &createUserHandler{
		repository:  repo,
		eventBus:    eventBus,
		idGenerator: idGenerator,
		logger:      logger,
	}
}

func (h *createUserHandler) Handle(ctx context.Context, command CreateUserCommand) (CreateUserResult, error) {
	if ctx.Err() != nil {
		return CreateUserResult{}, ctx.Err()
	}

	email := domain.NormalizeEmail(command.Email)
	exists, err := h.repository.ExistsByEmail(ctx, email)
	if err != nil {
		pkgApp.LogError(ctx, h.logger, "failed to check email uniqueness", err, map[string]interface{}{
			"email": email,
		})
		return CreateUserResult{}, err
	}
	if exists {
		return CreateUserResult{}, pkgDomain.NewDuplicateEntity("User", "email", email)
	}

	user, err := domain.NewUser(h.idGenerator(), command.Email, command.Name)
	if err != nil {
		return CreateUserResult{}, err
	}

	if err := h.repository.Save(ctx, user); err != nil {
		pkgApp.LogError(ctx, h.logger, "failed to save user", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return CreateUserResult{}, err
	}

	if err := publishEvents(ctx, h.eventBus, user); err != nil {
		return CreateUserResult{}, err
	}

	pkgApp.LogInfo(ctx, h.logger, "user created", map[string]interface{}{
		"user_id": user.ID,
	})
	return CreateUserResult{UserID: user.ID}, nil
}

type renameUserHandler struct {
	repository domain.UserRepository
	eventBus   pkgApp.EventBus
	logger     pkgApp.AppLogger
}

func NewRenameUserHandler(repo domain.UserRepository, eventBus pkgApp.EventBus, logger pkgApp.AppLogger) pkgApp.Handler[RenameUserCommand, RenameUserResult] {
	return &renameUserHandler{
		repository: repo,
		eventBus:   eventBus,
		logger:     logger,
	}
}

func (h *renameUserHandler) Handle(ctx context.Context, command RenameUserCommand) (RenameUserResult, error) {
	if ctx.Err() != nil {
		return RenameUserResult{}, ctx.Err()
	}

	user, err := h.repository.FindByID(ctx, command.UserID)
	if err != nil {
		return RenameUserResult{}, err
	}

	if err := user.Rename(command.Name); err != nil {
		return RenameUserResult{}, err
	}

	if user.HasEvents() {
		if err := h.repository.Update(ctx, user); err != nil {
			pkgApp.LogError(ctx, h.logger, "failed to update user", err, map[string]interface{}{
				"user_id": user.ID,
			})
			return RenameUserResult{}, err
		}
		if err := publishEvents(ctx, h.eventBus, user); err != nil {
			return RenameUserResult{}, err
		}
	}

	pkgApp.LogInfo(ctx, h.logger, "user renamed", map[string]interface{}{
		"user_id": user.ID,
	})
	return RenameUserResult{
		UserID:  user.ID,
		Name:    user.Name,
		Version: user.Version,
	}, nil
}

type getUserHandler struct {
	repository domain.UserRepository
	logger     pkgApp.AppLogger
}

func NewGetUserHandler(repo domain.UserRepository, logger pkgApp.AppLogger) pkgApp.Handler[GetUserQuery, domain.User] {
	return &getUserHandler{
		repository: repo,
		logger:     logger,
	}
}

func (h *getUserHandler) Handle(ctx context.Context, query GetUserQuery) (domain.User, error) {
	if ctx.Err() != nil {
		return domain.User{}, ctx.Err()
	}

	user, err := h.repository.FindByID(ctx, query.UserID)
	if err != nil {
		return domain.User{}, err
	}
	return *user, nil
}

type listUsersHandler struct {
	repository domain.UserRepository
	logger     pkgApp.AppLogger
}

func NewListUsersHandler(repo domain.UserRepository, logger pkgApp.AppLogger) pkgApp.Handler[ListUsersQuery, []domain.User] {
	return &listUsersHandler{
		repository: repo,
		logger:     logger,
	}
}

func (h *listUsersHandler) Handle(ctx context.Context, query ListUsersQuery) ([]domain.User, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	limit := query.Limit
	if limit == 0 {
		limit = defaultListLimit
	}
	return h.repository.List(ctx, query.Offset, limit)
}

// publishEvents drains the aggregate's recorded events onto the bus in the
// order they were recorded.
func publishEvents(ctx context.Context, eventBus pkgApp.EventBus, user *domain.User) error {
	for _, event := range user.PullEvents() {
		if err := eventBus.Publish(ctx, event); err != nil {
			return err
		}
	}
	return nil
}
