// internal/app/subscribers.go
package app

import (
	log "github.com/sirupsen/logrus"

	slackad "github.com/alchemi-dev/print-queue-bot/internal/adapters/slack"
	events "github.com/alchemi-dev/print-queue-bot/internal/domain/events"
)

// StartEventSubscribers hooks the bot onto the promotion events published by
// the queue manager. Returns a cancel func that unsubscribes everything.
func (b *Bot) StartEventSubscribers() func() {
	b.subsOnce.Do(func() {
		var cancels []func()

		cancels = append(cancels, events.Subscribe(func(ev events.UserPromoted) {
			// Delivery runs outside the manager's critical section; a failed
			// post never touches the committed queue state.
			go func() {
				text := b.l("YourTurn", map[string]interface{}{
					"User": slackad.Mention(ev.UserID),
				})
				if err := b.messenger.PostMessage(b.cfg.ChannelID, text); err != nil {
					b.logger.WithFields(log.Fields{
						"user_id": ev.UserID,
						"error":   err,
					}).Error("cant deliver promotion notification")
				}
			}()
		}))

		b.logger.WithField("promoted_subs", events.Count[events.UserPromoted]()).
			Debug("bus subscribers registered")

		b.cancelBus = func() {
			for _, c := range cancels {
				c()
			}
		}
	})
	return b.cancelBus
}
