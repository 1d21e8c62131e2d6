package command

import (
	"context"
	"gsbot/internal/core/port"

	"github.com/rs/zerolog"
)

const (
	pingCommand = "/ping"
	pingReply   = "I'm alive."
)

// Ping answers liveness checks with a fixed acknowledgment.
type Ping struct{}

func NewPing() *Ping {
	return &Ping{}
}

func (p *Ping) GetCommand() string {
	return pingCommand
}

func (p *Ping) Respond(ctx context.Context, conv port.Conversation) error {
	l := zerolog.Ctx(ctx).With().Str("command", p.GetCommand()).Logger()
	if msg := conv.Message(); msg != nil {
		l = l.With().Int("messageId", msg.ID).Int64("chatId", msg.ChatID).Logger()
	}

	l.Info().Msg("handling request")

	return conv.Reply(ctx, pingReply)
}
