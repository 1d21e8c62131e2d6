package handler

import (
	"context"
	"errors"
	"fmt"
	"gsbot/internal/adapters/metrics"
	"gsbot/internal/core/domain"
	"gsbot/internal/core/port"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/rs/zerolog/log"
)

type State int32

const (
	StateConstructed State = iota
	StateRunning
)

func (s State) String() string {
	switch s {
	case StateConstructed:
		return "constructed"
	case StateRunning:
		return "running"
	default:
		return "unknown"
	}
}

type Option func(*Bot)

// WithTimeout bounds each command invocation. Zero disables the limit.
func WithTimeout(timeout time.Duration) Option {
	return func(b *Bot) {
		b.timeout = timeout
	}
}

func WithRecorder(recorder metrics.Recorder) Option {
	return func(b *Bot) {
		b.recorder = recorder
	}
}

// Bot binds the registered command handlers into a messenger session and
// runs its receive loop.
type Bot struct {
	messenger port.Messenger
	manager   port.CommandManager
	timeout   time.Duration
	recorder  metrics.Recorder
	state     atomic.Int32
}

// NewBot dials a messenger session for token and binds every handler the
// manager reports, with the leading command delimiter stripped.
func NewBot(token string, manager port.CommandManager, dial port.Dialer, opts ...Option) (*Bot, error) {
	if token == "" {
		return nil, domain.ErrMissingToken
	}

	b := &Bot{
		manager:  manager,
		recorder: metrics.Nop(),
	}

	for _, opt := range opts {
		opt(b)
	}

	messenger, err := dial(token)
	if err != nil {
		return nil, fmt.Errorf("failed creating messenger session: %w", err)
	}
	b.messenger = messenger

	for _, handler := range manager.GetRegisteredHandlers() {
		name := strings.TrimPrefix(handler.GetCommand(), domain.CommandDelimiter)
		log.Info().Str("handler", handler.GetCommand()).Str("binding", name).Msg("binding command handler")
		messenger.RegisterCommand(name, b.bind(handler))
	}

	return b, nil
}

func (b *Bot) bind(handler port.Command) port.Action {
	command := handler.GetCommand()

	return func(ctx context.Context, conv port.Conversation) error {
		requestID, err := uuid.NewV4()
		if err != nil {
			log.Warn().Err(err).Msg("failed generating request id")
		}

		l := log.With().
			Str("command", command).
			Str("requestId", requestID.String()).
			Logger()
		ctx = l.WithContext(ctx)

		if b.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, b.timeout)
			defer cancel()
		}

		l.Debug().Msg("dispatching command")

		start := time.Now()
		err = handler.Respond(ctx, conv)

		status := metrics.StatusSuccess
		if err != nil {
			status = metrics.StatusError
			l.Debug().Err(err).Msg("command returned error")
		}
		b.recorder.RecordExecution(command, status, time.Since(start))

		return err
	}
}

// Run enters the messenger receive loop and blocks until ctx is cancelled.
// Cancellation is a clean shutdown and returns nil; any other loop error is
// returned unchanged. Run may be called only once.
func (b *Bot) Run(ctx context.Context) error {
	if !b.state.CompareAndSwap(int32(StateConstructed), int32(StateRunning)) {
		return domain.ErrAlreadyRunning
	}

	log.Info().Msg("starting bot")

	err := b.messenger.Start(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	log.Info().Msg("stopping bot")

	return nil
}

func (b *Bot) GetRegisteredHandlers() []port.Command {
	return b.manager.GetRegisteredHandlers()
}

func (b *Bot) State() State {
	return State(b.state.Load())
}
