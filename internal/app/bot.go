// Package app wires the queue core to the Slack adapter and renders replies.
package app

import (
	"net/http"
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"golang.org/x/text/language"

	slackad "github.com/alchemi-dev/print-queue-bot/internal/adapters/slack"
	"github.com/alchemi-dev/print-queue-bot/internal/queue"
	"github.com/alchemi-dev/print-queue-bot/pkg/config"
)

type Bot struct {
	cfg       *config.Config
	manager   *queue.Manager
	messenger slackad.Messenger
	localizer *i18n.Localizer
	logger    *log.Logger

	subsOnce  sync.Once
	cancelBus func()
}

func NewBot(cfg *config.Config, mgr *queue.Manager, messenger slackad.Messenger, bundle *i18n.Bundle, logger *log.Logger) *Bot {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Bot{
		cfg:       cfg,
		manager:   mgr,
		messenger: messenger,
		localizer: i18n.NewLocalizer(bundle, language.English.String()),
		logger:    logger,
	}
}

// Routes builds the bot's HTTP surface: the Slack events endpoint, Prometheus
// metrics and a liveness probe that flips once the manager stops accepting
// mutations.
func (b *Bot) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/slack/events", slackad.NewEventsHandler(b.cfg.SigningSecret, b.HandleMention, b.logger))
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		if !b.manager.Healthy() {
			http.Error(w, "queue manager unhealthy", http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

// Stop unsubscribes the bus listeners. Callable from main for a clean exit.
func (b *Bot) Stop() {
	if b.cancelBus != nil {
		b.cancelBus()
	}
}
