package service

import (
	"gsbot/internal/core/domain/command"
	"gsbot/internal/core/port"

	"github.com/rs/zerolog/log"
)

// CommandManager populates a command registry with the built-in handlers.
type CommandManager struct {
	registry port.CommandRegistry
}

func NewCommandManager(registry port.CommandRegistry) *CommandManager {
	return &CommandManager{registry: registry}
}

func builtinHandlers() []port.Command {
	return []port.Command{
		command.NewPing(),
	}
}

// PopulateBotHandlers adds every built-in handler to the registry. It is not
// idempotent: calling it again on the same registry fails with
// domain.ErrDuplicateName.
func (m *CommandManager) PopulateBotHandlers() error {
	for _, handler := range builtinHandlers() {
		if err := m.registry.Add(handler); err != nil {
			log.Error().Err(err).Str("handler", handler.GetCommand()).Msg("failed to populate command handler")
			return err
		}
	}

	log.Debug().Int("count", m.registry.Count()).Msg("populated bot handlers")

	return nil
}

func (m *CommandManager) GetRegisteredHandlers() []port.Command {
	return m.registry.GetAll()
}
