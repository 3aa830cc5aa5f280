package service

import (
	"context"
	"fmt"
	"log"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// fallbackReply is delivered when the completion backend fails, so the
// chat is not left without any response.
const fallbackReply = "Sorry, I could not process your message."

// Completer produces a single-turn model reply for a prompt.
type Completer interface {
	Complete(ctx context.Context, model, prompt string) (string, error)
}

// Sender delivers a reply to the originating chat.
type Sender interface {
	SendMessage(chatID int64, text string) error
}

// RelayService forwards inbound chat messages to the completion
// backend and delivers the reply out-of-band. Each update is handled
// independently; no ordering is guaranteed across deliveries.
type RelayService struct {
	completer Completer
	sender    Sender
	model     string
	timeout   time.Duration
}

func NewRelayService(completer Completer, sender Sender, model string, timeout time.Duration) *RelayService {
	return &RelayService{completer: completer, sender: sender, model: model, timeout: timeout}
}

// DispatchUpdate hands an update to a background task with its own
// timeout context, so the caller can acknowledge the provider without
// waiting for completion or delivery.
func (s *RelayService) DispatchUpdate(update tgbotapi.Update) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		if err := s.HandleUpdate(ctx, update); err != nil {
			log.Printf("relay update %d: %v", update.UpdateID, err)
		}
	}()
}

// HandleUpdate runs the relay pipeline for one provider delivery.
// Updates without message text are skipped: the provider also delivers
// edits, member joins and other non-message update types.
func (s *RelayService) HandleUpdate(ctx context.Context, update tgbotapi.Update) error {
	if update.Message == nil || update.Message.Chat == nil || update.Message.Text == "" {
		return nil
	}

	chatID := update.Message.Chat.ID
	reply, err := s.completer.Complete(ctx, s.model, update.Message.Text)
	if err != nil {
		log.Printf("completion for chat %d: %v", chatID, err)
		reply = fallbackReply
	}

	if err := s.sender.SendMessage(chatID, reply); err != nil {
		return fmt.Errorf("deliver reply to chat %d: %w", chatID, err)
	}
	return nil
}
