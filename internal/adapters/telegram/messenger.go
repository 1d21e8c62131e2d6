package telegram

import (
	"context"
	"fmt"
	"gsbot/internal/core/port"
	"strings"
	"time"
	"unicode/utf16"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"
)

// Client is the subset of *bot.Bot used by the messenger.
type Client interface {
	RegisterHandlerMatchFunc(matchFunc bot.MatchFunc, f bot.HandlerFunc, m ...bot.Middleware) string
	Start(ctx context.Context)
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
}

// Messenger binds command actions into the Telegram client's dispatch table
// and drives its long-polling loop.
type Messenger struct {
	client   Client
	username string
}

// NewMessenger wraps client. username is the bot's own username, accepted as
// the "@" suffix of addressed commands such as "/ping@gsbot".
func NewMessenger(client Client, username string) *Messenger {
	return &Messenger{client: client, username: username}
}

const getMeTimeout = 10 * time.Second

// Dial creates a Telegram session for the token. It satisfies port.Dialer.
func Dial(token string) (port.Messenger, error) {
	opts := []bot.Option{
		bot.WithDefaultHandler(noOpHandler),
		bot.WithSkipGetMe(),
		bot.WithErrorsHandler(func(err error) {
			log.Err(err).Msg("telegram client error")
		}),
	}

	b, err := bot.New(token, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed initializing telegram bot: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), getMeTimeout)
	defer cancel()

	me, err := b.GetMe(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed fetching bot identity: %w", err)
	}

	return NewMessenger(b, me.Username), nil
}

// RegisterCommand binds action to messages starting with the command name,
// which must not carry the leading slash.
func (m *Messenger) RegisterCommand(name string, action port.Action) {
	id := m.client.RegisterHandlerMatchFunc(m.matchCommand(name), m.handle(name, action))
	log.Debug().Str("command", name).Str("handlerId", id).Msg("bound command to telegram dispatcher")
}

// matchCommand matches a bot_command entity at offset 0 equal to name,
// optionally addressed as name@username.
func (m *Messenger) matchCommand(name string) bot.MatchFunc {
	return func(update *models.Update) bool {
		if update == nil || update.Message == nil {
			return false
		}

		command, ok := leadingCommand(update.Message)
		if !ok {
			return false
		}

		command, target, addressed := strings.Cut(command, "@")
		if addressed && (m.username == "" || !strings.EqualFold(target, m.username)) {
			return false
		}

		return command == name
	}
}

// leadingCommand returns the text of the bot_command entity at offset 0
// without its slash. Entity offsets are in UTF-16 code units.
func leadingCommand(message *models.Message) (string, bool) {
	for _, e := range message.Entities {
		if e.Type != models.MessageEntityTypeBotCommand || e.Offset != 0 {
			continue
		}

		text := utf16.Encode([]rune(message.Text))
		if e.Length < 2 || e.Length > len(text) {
			return "", false
		}

		return string(utf16.Decode(text[1:e.Length])), true
	}

	return "", false
}

func (m *Messenger) handle(name string, action port.Action) bot.HandlerFunc {
	return func(ctx context.Context, _ *bot.Bot, update *models.Update) {
		if update == nil || update.Message == nil {
			log.Debug().Str("command", name).Msg("update without message, ignoring")
			return
		}

		log.Debug().Str("message", update.Message.Text).Msg("received command")

		err := action(ctx, newConversation(m.client, update.Message))
		if err != nil {
			log.Err(err).Str("command", name).Msg("failed to respond to command")
		}
	}
}

// Start blocks until ctx is cancelled.
func (m *Messenger) Start(ctx context.Context) error {
	log.Info().Msg("bot listening")
	m.client.Start(ctx)

	return nil
}

func noOpHandler(_ context.Context, _ *bot.Bot, _ *models.Update) {}
