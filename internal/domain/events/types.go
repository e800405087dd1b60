// Package events - types.go
package events

// UserPromoted is emitted when finishing a turn leaves a new user at the
// front of the queue. The Slack adapter delivers it as a message; delivery
// failures never reach back into the queue mutation that caused it.
type UserPromoted struct {
	UserID string
}
