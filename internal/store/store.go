// Package store persists the queue order between process runs.
package store

import (
	"context"
	"errors"
)

// Store is the durable home of the queue snapshot. Implementations must make
// Save atomic: a crash mid-write leaves the previous snapshot intact.
type Store interface {
	// Load returns the persisted order, front first. A store that has no
	// snapshot yet returns an empty order and no error.
	Load(ctx context.Context) ([]string, error)
	// Save durably replaces the snapshot with the given order.
	Save(ctx context.Context, ids []string) error
}

// ErrMalformedSnapshot marks snapshot content that cannot round-trip. The
// caller treats it as fatal at startup rather than silently dropping state.
var ErrMalformedSnapshot = errors.New("malformed queue snapshot")
