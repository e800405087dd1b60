// internal/app/commands.go
package app

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	log "github.com/sirupsen/logrus"

	slackad "github.com/alchemi-dev/print-queue-bot/internal/adapters/slack"
	"github.com/alchemi-dev/print-queue-bot/internal/queue"
)

var mentionPrefix = regexp.MustCompile(`^<@[A-Z0-9]+>`)

// HandleMention is invoked for every @-mention of the bot. It determines how
// to modify the queue and what to say back, then posts the reply into the
// channel the command came from.
func (b *Bot) HandleMention(userID, channelID, text string) {
	reply := b.dispatch(queue.UserID(userID), text)
	if err := b.messenger.PostMessage(channelID, reply); err != nil {
		b.logger.WithFields(log.Fields{
			"user_id":    userID,
			"channel_id": channelID,
			"error":      err,
		}).Error("cant post reply")
	}
}

// dispatch parses the command word out of the mention text and runs it.
func (b *Bot) dispatch(user queue.UserID, text string) string {
	cmd := strings.ToLower(parseCommand(text))
	b.logger.WithFields(log.Fields{
		"user_id": string(user),
		"command": cmd,
	}).Debug("handling command")

	switch cmd {
	case "add":
		pos, err := b.manager.AddSelf(user)
		if err != nil {
			return b.rejection(err)
		}
		return b.l("Added", map[string]interface{}{
			"User":     slackad.Mention(string(user)),
			"Position": pos,
		})

	case "done":
		if err := b.manager.FinishTurn(user); err != nil {
			return b.rejection(err)
		}
		return b.l("Done", map[string]interface{}{
			"User": slackad.Mention(string(user)),
		})

	case "cancel":
		if err := b.manager.CancelSelf(user); err != nil {
			return b.rejection(err)
		}
		return b.l("Cancelled", map[string]interface{}{
			"User": slackad.Mention(string(user)),
		})

	case "show":
		return b.renderOrder(b.manager.CurrentOrder())

	default:
		return b.l("UnknownCommand", nil)
	}
}

// parseCommand strips the leading bot mention and returns the first word
// left, e.g. "<@U0BOT9X> add please" -> "add".
func parseCommand(text string) string {
	text = mentionPrefix.ReplaceAllString(strings.TrimSpace(text), "")
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func (b *Bot) renderOrder(order []queue.UserID) string {
	if len(order) == 0 {
		return b.l("ShowEmpty", nil)
	}
	var sb strings.Builder
	sb.WriteString(b.l("ShowHeader", map[string]interface{}{"Count": len(order)}))
	for i, id := range order {
		sb.WriteString(fmt.Sprintf("\n%d. %s", i+1, slackad.Mention(string(id))))
	}
	return sb.String()
}

// rejection maps the queue's typed rule violations onto user-facing replies.
// These are expected outcomes, not errors, so nothing is logged for them.
func (b *Bot) rejection(err error) string {
	switch {
	case errors.Is(err, queue.ErrBackToBack):
		return b.l("BackToBack", nil)
	case errors.Is(err, queue.ErrQueueFull):
		return b.l("QueueFull", nil)
	case errors.Is(err, queue.ErrNotAtFront):
		return b.l("NotAtFront", nil)
	case errors.Is(err, queue.ErrQueueEmpty):
		return b.l("QueueEmpty", nil)
	case errors.Is(err, queue.ErrAtFront):
		return b.l("AtFront", nil)
	case errors.Is(err, queue.ErrNotFound):
		return b.l("NotFound", nil)
	default:
		b.logger.WithField("error", err).Error("command failed")
		return b.l("UnknownError", nil)
	}
}
