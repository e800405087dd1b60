// Package config reads and validates the bot's environment configuration.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env"
)

// Config is everything the bot needs from the environment. During local
// development a .env file is loaded first (see cmd/bot).
type Config struct {
	BotToken      string `env:"SLACK_BOT_TOKEN,required"`
	SigningSecret string `env:"SLACK_SIGNING_SECRET,required"`
	// ChannelID is where promotion notifications are announced.
	ChannelID string `env:"SLACK_QUEUE_CHANNEL_ID,required"`

	ListenAddr string `env:"LISTEN_ADDR" envDefault:":3152"`
	// StatePath points at the durable queue snapshot. Empty means the queue
	// lives only in memory and dies with the process.
	StatePath   string        `env:"QUEUE_STATE_PATH"`
	SaveTimeout time.Duration `env:"QUEUE_SAVE_TIMEOUT" envDefault:"5s"`
	LogLevel    string        `env:"LOG_LEVEL" envDefault:"info"`
	MessageFile string        `env:"MESSAGE_FILE" envDefault:"i18n/en.toml"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// Redacted is a log-safe rendering of the config.
func (c *Config) Redacted() string {
	tok := "[set]"
	if c.BotToken == "" {
		tok = "[empty]"
	}
	return fmt.Sprintf(
		"channelID=%s listenAddr=%s statePath=%q saveTimeout=%s token=%s",
		c.ChannelID, c.ListenAddr, c.StatePath, c.SaveTimeout, tok,
	)
}
