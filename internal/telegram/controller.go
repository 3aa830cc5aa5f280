package telegram

import (
	"fmt"
	"log"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// State of the provider-side webhook subscription as derived from the
// last control round-trip. The provider owns the real state; nothing
// is cached locally.
type State string

const (
	StateUnknown      State = "unknown"
	StateRegistered   State = "registered"
	StateUnregistered State = "unregistered"
)

// Controller manages the Telegram webhook subscription and delivers
// outbound replies to chats.
type Controller struct {
	api     *tgbotapi.BotAPI
	baseURL string
}

// New authenticates against the Bot API and returns a controller whose
// webhook points at baseURL + /webhook. Every call through the
// controller is bounded by the given timeout.
func New(token, baseURL string, timeout time.Duration) (*Controller, error) {
	api, err := tgbotapi.NewBotAPIWithClient(token, tgbotapi.APIEndpoint, &http.Client{Timeout: timeout})
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}

	log.Printf("[info] bot authorized on account %s", api.Self.UserName)

	return NewWithAPI(api, baseURL), nil
}

// NewWithAPI wires an already-constructed API client, used by tests.
func NewWithAPI(api *tgbotapi.BotAPI, baseURL string) *Controller {
	return &Controller{api: api, baseURL: baseURL}
}

// Register points the provider's webhook at this service. The current
// webhook is deleted first, dropping any pending updates, so no stale
// URL or backlog survives a re-registration. Safe to call when already
// registered.
func (c *Controller) Register() (State, error) {
	if _, err := c.api.Request(tgbotapi.DeleteWebhookConfig{DropPendingUpdates: true}); err != nil {
		log.Printf("delete webhook before register: %v", err)
	}

	webhook, err := tgbotapi.NewWebhook(c.baseURL + "/webhook")
	if err != nil {
		return StateUnregistered, fmt.Errorf("build webhook config: %w", err)
	}
	if _, err := c.api.Request(webhook); err != nil {
		return StateUnregistered, fmt.Errorf("set webhook: %w", err)
	}

	return StateRegistered, nil
}

// Unregister deletes the provider-side webhook. Deleting a webhook
// that is not set succeeds on the provider side, so this is a no-op
// when already unregistered.
func (c *Controller) Unregister() (State, error) {
	if _, err := c.api.Request(tgbotapi.DeleteWebhookConfig{DropPendingUpdates: true}); err != nil {
		return StateUnknown, fmt.Errorf("delete webhook: %w", err)
	}
	return StateUnregistered, nil
}

// Status asks the provider whether a webhook is currently set.
func (c *Controller) Status() (State, error) {
	info, err := c.api.GetWebhookInfo()
	if err != nil {
		return StateUnknown, fmt.Errorf("get webhook info: %w", err)
	}
	if info.URL == "" {
		return StateUnregistered, nil
	}
	return StateRegistered, nil
}

// SendMessage delivers a reply to the originating chat.
func (c *Controller) SendMessage(chatID int64, text string) error {
	if _, err := c.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}
