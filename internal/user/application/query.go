package application

import (
	pkgDomain "github.com/mateusmacedo/go-mediator/pkg/domain"
)

// GetUserQuery fetches one user by id.
type GetUserQuery struct {
	pkgDomain.Query

	UserID string `json:"user_id" validate:"required,uuid"`
}

func (GetUserQuery) RequestName() string {
	return "user.get"
}

// ListUsersQuery pages through users in creation order.
type ListUsersQuery struct {
	pkgDomain.Query

	Offset int `json:"offset" validate:"min=0"`
	Limit  int `json:"limit" validate:"min=0,max=100"`
}

func (ListUsersQuery) RequestName() string {
	return "user.list"
}

// RequestNames lists every request the slice dispatches, for the boot-time
// registration check.
func RequestNames() []string {
	return []string{
		CreateUserCommand{}.RequestName(),
		RenameUserCommand{}.RequestName(),
		GetUserQuery{}.RequestName(),
		ListUsersQuery{}.RequestName(),
	}
}
