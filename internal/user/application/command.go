package application

import (
	pkgDomain "github.com/mateusmacedo/go-mediator/pkg/domain"
)

// CreateUserCommand registers a new user.
type CreateUserCommand struct {
	pkgDomain.Command

	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"required,min=2,max=100"`
}

func (CreateUserCommand) RequestName() string {
	return "user.create"
}

// CreateUserResult is returned on successful creation.
type CreateUserResult struct {
	UserID string `json:"user_id"`
}

// RenameUserCommand changes a user's display name.
type RenameUserCommand struct {
	pkgDomain.Command

	UserID string `json:"user_id" validate:"required,uuid"`
	Name   string `json:"name" validate:"required,min=2,max=100"`
}

func (RenameUserCommand) RequestName() string {
	return "user.rename"
}

// RenameUserResult is returned on successful rename.
type RenameUserResult struct {
	UserID  string `json:"user_id"`
	Name    string `json:"name"`
	Version int64  `json:"version"`
}
