package infrastructure

import (
	"context"
	"sort"
	"sync"

	"github.com/mateusmacedo/go-mediator/pkg/application"
	"github.com/mateusmacedo/go-mediator/pkg/domain"
)

// HandlerFactory produces the handler bound to one request name. The factory
// runs on every dispatch, so a handler may keep per-dispatch state.
type HandlerFactory func() application.RequestHandler

// HandlerRegistry binds request names to their single handler. It doubles as
// the resolver consulted by the mediator on every dispatch.
type HandlerRegistry interface {
	application.HandlerResolver

	Register(requestName string, handler application.RequestHandler) error
	RegisterFactory(requestName string, factory HandlerFactory) error
	EnsureRegistered(requestNames ...string) error
	RegisteredNames() []string
}

type handlerRegistry struct {
	factories map[string]HandlerFactory
	mu        sync.RWMutex
}

func NewHandlerRegistry() HandlerRegistry {
	return &handlerRegistry{
		factories: make(map[string]HandlerFactory),
	}
}

// Register binds a ready handler instance, shared across dispatches.
func (r *handlerRegistry) Register(requestName string, handler application.RequestHandler) error {
	if handler == nil {
		return application.NewConfigurationError("cannot register nil handler for %q", requestName)
	}
	return r.RegisterFactory(requestName, func() application.RequestHandler { return handler })
}

func (r *handlerRegistry) RegisterFactory(requestName string, factory HandlerFactory) error {
	if requestName == "" {
		return application.NewConfigurationError("cannot register handler for empty request name")
	}
	if factory == nil {
		return application.NewConfigurationError("cannot register nil handler factory for %q", requestName)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[requestName]; exists {
		return application.NewConfigurationError("handler already registered for %q", requestName)
	}
	r.factories[requestName] = factory
	return nil
}

func (r *handlerRegistry) Resolve(requestName string) (application.RequestHandler, error) {
	r.mu.RLock()
	factory, found := r.factories[requestName]
	r.mu.RUnlock()

	if !found {
		return nil, application.NewConfigurationError("no handler registered for %q", requestName)
	}
	return factory(), nil
}

// EnsureRegistered verifies at boot time that every listed request name has a
// handler, so a missing binding fails startup instead of the first dispatch.
func (r *handlerRegistry) EnsureRegistered(requestNames ...string) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var missing []string
	for _, name := range requestNames {
		if _, found := r.factories[name]; !found {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return application.NewConfigurationError("no handler registered for %v", missing)
	}
	return nil
}

func (r *handlerRegistry) RegisteredNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RegisterHandler binds a typed handler under the request's own name.
func RegisterHandler[R domain.Request, T any](registry HandlerRegistry, handler application.Handler[R, T]) error {
	var request R
	return registry.Register(request.RequestName(), application.Adapt(handler))
}

// RegisterHandlerFunc is the function-literal variant of RegisterHandler.
func RegisterHandlerFunc[R domain.Request, T any](registry HandlerRegistry, fn func(ctx context.Context, request R) (T, error)) error {
	var request R
	return registry.Register(request.RequestName(), application.AdaptFunc(fn))
}
