package slack

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	slackapi "github.com/slack-go/slack"
)

// Messenger posts plain messages into a channel. The app layer depends on
// this instead of the Slack client so command handling stays testable
// offline.
type Messenger interface {
	PostMessage(channelID, text string) error
}

type apiMessenger struct {
	client *slackapi.Client
	logger *log.Logger
}

func NewMessenger(client *slackapi.Client, logger *log.Logger) Messenger {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &apiMessenger{client: client, logger: logger}
}

func (m *apiMessenger) PostMessage(channelID, text string) error {
	_, _, err := m.client.PostMessage(channelID, slackapi.MsgOptionText(text, false))
	if err != nil {
		m.logger.WithFields(log.Fields{
			"channel_id": channelID,
			"error":      err,
		}).Error("cant post message")
	}
	return err
}

// Mention renders a user ID the way Slack turns into a highlighted @-mention.
func Mention(userID string) string {
	return fmt.Sprintf("<@%s>", userID)
}
