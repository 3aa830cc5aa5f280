package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"chat-relay/internal/llm"
)

// Timeouts applied to outbound round-trips. The relay budget covers a
// completion call plus the outbound delivery.
const (
	RequestTimeout = 30 * time.Second
	RelayTimeout   = 2 * RequestTimeout
)

// Config keeps runtime settings for the service.
type Config struct {
	TelegramToken        string
	GroqAPIKey           string
	PublicBaseURL        string
	ListenAddr           string
	DatabaseURL          string
	RelayModel           string
	WebhookCheckInterval time.Duration
}

// Load reads configuration from environment variables with sane
// defaults. The bot token, the Groq key and the public base URL have
// no usable default: without them webhook control and relay delivery
// cannot work, so their absence is a configuration error.
func Load() (Config, error) {
	cfg := Config{
		TelegramToken:        strings.TrimSpace(os.Getenv("TELEGRAM_BOT_TOKEN")),
		GroqAPIKey:           strings.TrimSpace(os.Getenv("GROQ_API_KEY")),
		PublicBaseURL:        strings.TrimRight(strings.TrimSpace(os.Getenv("PUBLIC_BASE_URL")), "/"),
		ListenAddr:           strings.TrimSpace(os.Getenv("LISTEN_ADDR")),
		DatabaseURL:          strings.TrimSpace(os.Getenv("DATABASE_URL")),
		RelayModel:           strings.TrimSpace(os.Getenv("RELAY_MODEL")),
		WebhookCheckInterval: parseInterval(strings.TrimSpace(os.Getenv("WEBHOOK_CHECK_INTERVAL_HOURS"))),
	}

	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8080"
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "chat_relay.db"
	}

	if cfg.RelayModel == "" {
		cfg.RelayModel = llm.ModelDeepseek
	}

	if cfg.WebhookCheckInterval == 0 {
		cfg.WebhookCheckInterval = 6 * time.Hour
	}

	if cfg.TelegramToken == "" {
		return cfg, fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}

	if cfg.GroqAPIKey == "" {
		return cfg, fmt.Errorf("GROQ_API_KEY is required")
	}

	if cfg.PublicBaseURL == "" {
		return cfg, fmt.Errorf("PUBLIC_BASE_URL is required")
	}

	return cfg, nil
}

func parseInterval(raw string) time.Duration {
	if raw == "" {
		return 0
	}
	hours, err := time.ParseDuration(raw + "h")
	if err != nil || hours <= 0 {
		return 0
	}
	return hours
}
