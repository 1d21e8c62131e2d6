package command

import (
	"gsbot/internal/core/domain"
	"gsbot/internal/core/port"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/samber/oops"
)

// Registry stores command handlers keyed by their command identifier.
// It is safe for concurrent use.
type Registry struct {
	commands map[string]port.Command
	order    []string
	mu       sync.RWMutex
}

func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]port.Command)}
}

func (r *Registry) Add(handler port.Command) error {
	command := handler.GetCommand()
	if command == "" {
		return oops.Code(domain.CodeEmptyName).Wrap(domain.ErrEmptyName)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.commands == nil {
		r.commands = make(map[string]port.Command)
	}

	if _, ok := r.commands[command]; ok {
		return oops.Code(domain.CodeDuplicateName).
			With("command", command).
			Wrapf(domain.ErrDuplicateName, "handler for command %q", command)
	}

	log.Info().Str("handler", command).Msg("adding command handler to registry")
	r.commands[command] = handler
	r.order = append(r.order, command)

	return nil
}

func (r *Registry) Remove(command string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.commands[command]; !ok {
		return oops.Code(domain.CodeNotFound).
			With("command", command).
			Wrapf(domain.ErrNotFound, "handler for command %q", command)
	}

	log.Info().Str("handler", command).Msg("removing command handler from registry")
	delete(r.commands, command)

	for i, name := range r.order {
		if name == command {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	return nil
}

func (r *Registry) Get(command string) (port.Command, bool) {
	log.Debug().Str("command", command).Msg("fetching command handler from registry")

	r.mu.RLock()
	defer r.mu.RUnlock()

	handler, ok := r.commands[command]
	return handler, ok
}

// GetAll returns the registered handlers in insertion order.
// The returned slice is a copy and safe to modify.
func (r *Registry) GetAll() []port.Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	handlers := make([]port.Command, 0, len(r.order))
	for _, name := range r.order {
		handlers = append(handlers, r.commands[name])
	}

	return handlers
}

func (r *Registry) Has(command string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.commands[command]
	return ok
}

func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.commands)
}

func (r *Registry) ListCommands() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]string, len(r.order))
	copy(keys, r.order)

	return keys
}
