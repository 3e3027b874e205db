package infrastructure

import (
	"context"
	"sort"
	"sync"

	"github.com/mateusmacedo/go-mediator/internal/user/domain"
	pkgApp "github.com/mateusmacedo/go-mediator/pkg/application"
	pkgDomain "github.com/mateusmacedo/go-mediator/pkg/domain"
)

// InMemoryUserRepository keeps users in a map. It reports the same domain
// errors as the database-backed repository, which makes it a drop-in for
// demos and tests. It knows nothing about ambient sessions.
type InMemoryUserRepository struct {
	mu     sync.RWMutex
	data   map[string]domain.User
	logger pkgApp.AppLogger
}

func NewInMemoryUserRepository(logger pkgApp.AppLogger) *InMemoryUserRepository {
	return &InMemoryUserRepository{
		data:   make(map[string]domain.User),
		logger: logger,
	}
}

func (r *InMemoryUserRepository) Save(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.data[user.ID]; exists {
		return pkgDomain.NewDuplicateEntity("User", "id", user.ID)
	}
	for _, existing := range r.data {
		if existing.Email == user.Email {
			return pkgDomain.NewDuplicateEntity("User", "email", user.Email)
		}
	}

	r.data[user.ID] = snapshot(user)
	return nil
}

func (r *InMemoryUserRepository) Update(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, exists := r.data[user.ID]
	if !exists {
		return pkgDomain.NewEntityNotFound("User", user.ID)
	}
	if current.Version != user.Version {
		return pkgDomain.NewVersionMismatch("User", user.ID, user.Version, current.Version)
	}

	user.Version++
	r.data[user.ID] = snapshot(user)
	return nil
}

func (r *InMemoryUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, exists := r.data[id]
	if !exists {
		return nil, pkgDomain.NewEntityNotFound("User", id)
	}
	return &user, nil
}

func (r *InMemoryUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	email = domain.NormalizeEmail(email)
	for _, user := range r.data {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *InMemoryUserRepository) List(ctx context.Context, offset, limit int) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]domain.User, 0, len(r.data))
	for _, user := range r.data {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool {
		if users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].ID < users[j].ID
		}
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})

	if offset >= len(users) {
		return []domain.User{}, nil
	}
	end := offset + limit
	if end > len(users) {
		end = len(users)
	}
	return users[offset:end], nil
}

// snapshot stores a copy without the caller's pending events.
func snapshot(user *domain.User) domain.User {
	copied := *user
	copied.AggregateRoot = pkgDomain.AggregateRoot{}
	return copied
}
