// Package slack adapts the Slack Events API and Web API to the queue core.
package slack

import (
	"encoding/json"
	"io"
	"net/http"

	log "github.com/sirupsen/logrus"
	slackapi "github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"
)

// MentionHandler receives every app_mention aimed at the bot: who wrote it,
// where, and the raw message text.
type MentionHandler func(userID, channelID, text string)

// EventsHandler is the HTTP endpoint Slack delivers events to. Slack expects
// a 200 within 5 seconds, so mentions are handed to a goroutine and the
// request is answered immediately.
type EventsHandler struct {
	signingSecret string
	onMention     MentionHandler
	logger        *log.Logger
}

func NewEventsHandler(signingSecret string, onMention MentionHandler, logger *log.Logger) *EventsHandler {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &EventsHandler{signingSecret: signingSecret, onMention: onMention, logger: logger}
}

func (h *EventsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	verifier, err := slackapi.NewSecretsVerifier(r.Header, h.signingSecret)
	if err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if _, err := verifier.Write(body); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if err := verifier.Ensure(); err != nil {
		h.logger.WithField("error", err).Warn("rejected slack request with bad signature")
		http.Error(w, "invalid signature", http.StatusUnauthorized)
		return
	}

	event, err := slackevents.ParseEvent(json.RawMessage(body), slackevents.OptionNoVerifyToken())
	if err != nil {
		http.Error(w, "bad payload", http.StatusBadRequest)
		return
	}

	switch event.Type {
	case slackevents.URLVerification:
		var challenge slackevents.ChallengeResponse
		if err := json.Unmarshal(body, &challenge); err != nil {
			http.Error(w, "bad payload", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte(challenge.Challenge))

	case slackevents.CallbackEvent:
		if mention, ok := event.InnerEvent.Data.(*slackevents.AppMentionEvent); ok {
			go h.onMention(mention.User, mention.Channel, mention.Text)
		}
		w.WriteHeader(http.StatusOK)

	default:
		w.WriteHeader(http.StatusOK)
	}
}
