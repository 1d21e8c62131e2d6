package domain

import "errors"

// CommandDelimiter prefixes every canonical command name, e.g. "/ping".
const CommandDelimiter = "/"

var (
	ErrDuplicateName  = errors.New("command handler already registered")
	ErrNotFound       = errors.New("command handler not found")
	ErrEmptyName      = errors.New("command handler has empty name")
	ErrMissingToken   = errors.New("bot token not set")
	ErrAlreadyRunning = errors.New("bot already running")
)

// Error codes attached to registry errors.
const (
	CodeDuplicateName = "DUPLICATE_NAME"
	CodeNotFound      = "NOT_FOUND"
	CodeEmptyName     = "EMPTY_NAME"
)
