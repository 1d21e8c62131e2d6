package port

import (
	"context"
	"gsbot/internal/core/domain"
)

// Conversation is the context of an incoming message a command responds to.
type Conversation interface {
	// Message returns the incoming message that triggered the command.
	Message() *domain.Message
	// Reply sends text as a reply to the incoming message in its originating chat.
	Reply(ctx context.Context, text string) error
}

type Command interface {
	// Respond handles an incoming command within the given conversation.
	Respond(ctx context.Context, conv Conversation) error
	// GetCommand retrieves the command identifier including its leading delimiter, e.g. "/ping".
	GetCommand() string
}

type CommandRegistry interface {
	// Add inserts a command handler under its command identifier.
	Add(handler Command) error
	// Remove deletes the command handler registered for the given identifier.
	Remove(command string) error
	// Get retrieves a registered Command, reporting false if it is absent.
	Get(command string) (Command, bool)
	// GetAll returns a snapshot of every registered Command in insertion order.
	GetAll() []Command
	// Has reports whether a handler is registered for the given identifier.
	Has(command string) bool
	// Count returns the number of registered handlers.
	Count() int
	// ListCommands returns a list of all command identifiers currently registered in the command registry.
	ListCommands() []string
}

type CommandManager interface {
	// PopulateBotHandlers adds the built-in command handlers to the registry.
	PopulateBotHandlers() error
	// GetRegisteredHandlers returns every handler currently in the registry.
	GetRegisteredHandlers() []Command
}
