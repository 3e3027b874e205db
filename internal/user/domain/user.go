package domain

import (
	"context"
	"strings"
	"time"

	pkgDomain "github.com/mateusmacedo/go-mediator/pkg/domain"
)

const (
	EventUserCreated = "user.created"
	EventUserRenamed = "user.renamed"
)

// UserCreatedPayload is the payload of a user.created event.
type UserCreatedPayload struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

// UserRenamedPayload is the payload of a user.renamed event.
type UserRenamedPayload struct {
	UserID  string `json:"user_id"`
	OldName string `json:"old_name"`
	NewName string `json:"new_name"`
}

// User is the aggregate root of the user slice. Version backs the optimistic
// concurrency check applied on updates.
type User struct {
	pkgDomain.AggregateRoot `gorm:"-" json:"-"`

	ID        string    `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"uniqueIndex"`
	Name      string    `json:"name" gorm:"index"`
	Version   int64     `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewUser creates a user and records its creation event. The email is
// normalized before it is stored.
func NewUser(id, email, name string) (*User, error) {
	email = NormalizeEmail(email)
	name = strings.TrimSpace(name)

	if id == "" {
		return nil, pkgDomain.NewDomainValidation("id", id, "must not be empty")
	}
	if email == "" {
		return nil, pkgDomain.NewDomainValidation("email", email, "must not be empty")
	}
	if name == "" {
		return nil, pkgDomain.NewDomainValidation("name", name, "must not be empty")
	}

	now := time.Now().UTC()
	user := &User{
		ID:        id,
		Email:     email,
		Name:      name,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	user.Record(pkgDomain.NewEvent(EventUserCreated, user.ID, UserCreatedPayload{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
	}))
	return user, nil
}

// Rename changes the display name and records the rename event. Renaming to
// the current name is a no-op and records nothing.
func (u *User) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return pkgDomain.NewDomainValidation("name", name, "must not be empty")
	}
	if name == u.Name {
		return nil
	}

	oldName := u.Name
	u.Name = name
	u.UpdatedAt = time.Now().UTC()
	u.Record(pkgDomain.NewEvent(EventUserRenamed, u.ID, UserRenamedPayload{
		UserID:  u.ID,
		OldName: oldName,
		NewName: name,
	}))
	return nil
}

// NormalizeEmail lowercases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// UserRepository is the persistence port of the user slice. Implementations
// report failures through the domain error constructors so the dispatch
// boundary can translate them.
type UserRepository interface {
	Save(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context, offset, limit int) ([]User, error)
}
