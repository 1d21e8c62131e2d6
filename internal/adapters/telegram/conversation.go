package telegram

import (
	"context"
	"gsbot/internal/core/domain"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// TelegramMessageLimit is the maximum message length in characters.
const TelegramMessageLimit = 4096

type sender interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
}

// Conversation is an incoming Telegram message that can be replied to.
type Conversation struct {
	sender  sender
	message *models.Message
}

func newConversation(s sender, message *models.Message) *Conversation {
	return &Conversation{sender: s, message: message}
}

func (c *Conversation) Message() *domain.Message {
	return &domain.Message{
		ID:       c.message.ID,
		ChatID:   c.message.Chat.ID,
		Username: getUserNameOrFirstName(c.message.From),
		Text:     c.message.Text,
	}
}

// Reply sends text to the originating chat as a reply to the incoming
// message. Text above the Telegram limit is split into several messages.
func (c *Conversation) Reply(ctx context.Context, text string) error {
	chatID := c.message.Chat.ID

	for _, chunk := range splitMessage(text, TelegramMessageLimit) {
		_, err := c.sender.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   chunk,
			ReplyParameters: &models.ReplyParameters{
				MessageID: c.message.ID,
				ChatID:    chatID,
			},
		})
		if err != nil {
			return err
		}
	}

	return nil
}

func splitMessage(text string, limit int) []string {
	runes := []rune(text)
	if len(runes) <= limit {
		return []string{text}
	}

	chunks := make([]string, 0, len(runes)/limit+1)
	for len(runes) > limit {
		chunks = append(chunks, string(runes[:limit]))
		runes = runes[limit:]
	}

	if len(runes) > 0 {
		chunks = append(chunks, string(runes))
	}

	return chunks
}

func getUserNameOrFirstName(user *models.User) string {
	if user == nil {
		return ""
	}

	if user.Username == "" {
		return user.FirstName
	}

	return "@" + user.Username
}
