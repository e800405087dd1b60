// Command bot starts the print-queue bot process.
//
// This binary:
//  1. loads config from environment variables (.env during dev)
//  2. restores the queue from its durable snapshot
//  3. serves the Slack events endpoint plus /metrics and /healthz
//  4. waits for SIGINT/SIGTERM and shuts the server down cleanly
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	log "github.com/sirupsen/logrus"
	slackapi "github.com/slack-go/slack"
	"golang.org/x/text/language"

	slackad "github.com/alchemi-dev/print-queue-bot/internal/adapters/slack"
	"github.com/alchemi-dev/print-queue-bot/internal/app"
	"github.com/alchemi-dev/print-queue-bot/internal/queue"
	"github.com/alchemi-dev/print-queue-bot/internal/store"
	"github.com/alchemi-dev/print-queue-bot/pkg/config"
)

func main() {
	// load .env for local development.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := log.New()
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatalf("cant parse log level: %v", err)
	}
	logger.SetLevel(level)

	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	bundle.MustLoadMessageFile(cfg.MessageFile)

	// No state path means the queue is not durable; make that loud.
	var st store.Store
	if cfg.StatePath != "" {
		st = store.NewFileStore(cfg.StatePath)
	} else {
		logger.Warn("QUEUE_STATE_PATH not set, queue state will not survive restarts")
		st = store.NewMemStore()
	}

	mgr, err := queue.NewManager(st, cfg.SaveTimeout, logger)
	if err != nil {
		// Covers the malformed-snapshot case: refuse to serve rather than
		// start from corrupt or partial state.
		logger.WithField("error", err).Fatal("cant restore queue state")
	}

	client := slackapi.New(cfg.BotToken)
	b := app.NewBot(cfg, mgr, slackad.NewMessenger(client, logger), bundle, logger)
	b.StartEventSubscribers()
	defer b.Stop()

	srv := &http.Server{Addr: cfg.ListenAddr, Handler: b.Routes()}

	go func() {
		logger.Infof("bot ready - %s", cfg.Redacted())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithField("error", err).Fatal("http server error")
		}
	}()

	// block the process until SIGINT/SIGTERM for a clean shutdown.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("stopping bot by signal")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	logger.Info("stopped")
}
