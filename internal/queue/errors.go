// Package queue - errors.go
// Centralized, comparable error values used across the waitlist logic.
package queue

// qerr is a lightweight comparable error type.
// Using constants of this type allows errors.Is to work as expected.
type qerr string

func (e qerr) Error() string { return string(e) }

var (
	ErrBackToBack = qerr("cannot queue directly behind yourself")
	ErrQueueFull  = qerr("self-chain limit reached")
	ErrNotAtFront = qerr("not at the front of the queue")
	ErrQueueEmpty = qerr("queue is empty")
	ErrAtFront    = qerr("front of the queue must finish, not cancel")
	ErrNotFound   = qerr("not in the queue")
	ErrUnhealthy  = qerr("queue manager refuses mutations after persistence failures")
)
