package port

import "context"

// Action is a command action bound into a Messenger dispatch table.
type Action func(ctx context.Context, conv Conversation) error

type Messenger interface {
	// RegisterCommand binds an action to a bare command name (without delimiter) in the dispatch table.
	RegisterCommand(name string, action Action)
	// Start runs the receive loop and blocks until ctx is cancelled or the loop fails.
	Start(ctx context.Context) error
}

// Dialer creates a Messenger session bound to the given credential.
type Dialer func(token string) (Messenger, error)
