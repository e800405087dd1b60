package queue

import (
	"context"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/alchemi-dev/print-queue-bot/internal/domain/events"
	"github.com/alchemi-dev/print-queue-bot/internal/monitoring"
	"github.com/alchemi-dev/print-queue-bot/internal/store"
)

// maxSaveFailures is how many consecutive snapshot write failures we tolerate
// before the manager refuses mutations entirely. Silently degrading to
// memory-only operation would risk undetected data loss.
const maxSaveFailures = 3

const defaultSaveTimeout = 5 * time.Second

// Manager serializes access to one Waitlist, persists every successful
// mutation before reporting it, and publishes promotion events. Mutations run
// one at a time under the write lock: rule check, in-memory change, durable
// save, event emission. CurrentOrder only needs the read lock.
type Manager struct {
	mu   sync.RWMutex
	list *Waitlist
	st   store.Store

	saveTimeout time.Duration
	failures    int
	unhealthy   bool
	logger      *log.Logger
}

// NewManager restores the waitlist from the store. A snapshot that fails to
// parse aborts construction: starting from corrupt state loses user slots.
func NewManager(st store.Store, saveTimeout time.Duration, logger *log.Logger) (*Manager, error) {
	if logger == nil {
		logger = log.StandardLogger()
	}
	if saveTimeout <= 0 {
		saveTimeout = defaultSaveTimeout
	}

	ids, err := st.Load(context.Background())
	if err != nil {
		return nil, fmt.Errorf("restore queue snapshot: %w", err)
	}
	entries := make([]UserID, len(ids))
	for i, id := range ids {
		entries[i] = UserID(id)
	}

	m := &Manager{
		list:        NewWaitlist(entries),
		st:          st,
		saveTimeout: saveTimeout,
		logger:      logger,
	}
	monitoring.SetQueueLength(m.list.Len())
	logger.WithField("queue_length", m.list.Len()).Info("queue state restored")
	return m, nil
}

// AddSelf appends a slot for id and returns its 1-based position.
func (m *Manager) AddSelf(id UserID) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.unhealthy {
		monitoring.TrackCommand("add", "unhealthy")
		return 0, ErrUnhealthy
	}

	prev := m.list.Snapshot()
	pos, err := m.list.Add(id)
	if err != nil {
		monitoring.TrackCommand("add", "rejected")
		return 0, err
	}
	if err := m.save(); err != nil {
		m.list = NewWaitlist(prev)
		monitoring.TrackCommand("add", "error")
		return 0, err
	}

	monitoring.TrackCommand("add", "ok")
	monitoring.SetQueueLength(m.list.Len())
	return pos, nil
}

// FinishTurn removes id from the front. When somebody else is left in line, a
// UserPromoted event goes out after the save commits; its delivery is the
// subscriber's problem and cannot undo the mutation.
func (m *Manager) FinishTurn(id UserID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.unhealthy {
		monitoring.TrackCommand("done", "unhealthy")
		return ErrUnhealthy
	}

	prev := m.list.Snapshot()
	next, promoted, err := m.list.RemoveFront(id)
	if err != nil {
		monitoring.TrackCommand("done", "rejected")
		return err
	}
	if err := m.save(); err != nil {
		m.list = NewWaitlist(prev)
		monitoring.TrackCommand("done", "error")
		return err
	}

	monitoring.TrackCommand("done", "ok")
	monitoring.SetQueueLength(m.list.Len())
	if promoted {
		monitoring.TrackPromotion()
		m.logger.WithField("user_id", string(next)).Info("user promoted to front")
		events.Publish(events.UserPromoted{UserID: string(next)})
	}
	return nil
}

// CancelSelf gives up a waiting (non-front) slot. Nobody changes who is being
// served, so no event is emitted.
func (m *Manager) CancelSelf(id UserID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.unhealthy {
		monitoring.TrackCommand("cancel", "unhealthy")
		return ErrUnhealthy
	}

	prev := m.list.Snapshot()
	if err := m.list.RemoveSelf(id); err != nil {
		monitoring.TrackCommand("cancel", "rejected")
		return err
	}
	if err := m.save(); err != nil {
		m.list = NewWaitlist(prev)
		monitoring.TrackCommand("cancel", "error")
		return err
	}

	monitoring.TrackCommand("cancel", "ok")
	monitoring.SetQueueLength(m.list.Len())
	return nil
}

// CurrentOrder returns a point-in-time copy of the queue, front first.
func (m *Manager) CurrentOrder() []UserID {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.list.Snapshot()
}

// Healthy reports whether the manager still accepts mutations.
func (m *Manager) Healthy() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return !m.unhealthy
}

// save writes the current order durably. Must be called with mu held. The
// write is bounded by saveTimeout so a stuck disk surfaces as an error
// instead of starving every later command behind the lock.
func (m *Manager) save() error {
	ctx, cancel := context.WithTimeout(context.Background(), m.saveTimeout)
	defer cancel()

	ids := m.list.Snapshot()
	raw := make([]string, len(ids))
	for i, id := range ids {
		raw[i] = string(id)
	}

	done := make(chan error, 1)
	go func() { done <- m.st.Save(ctx, raw) }()

	var err error
	select {
	case err = <-done:
	case <-ctx.Done():
		// The abandoned writer is still running and could land its stale
		// snapshot after a later commit. With the outcome unknown, fencing
		// right away is the only state that cannot diverge further from
		// disk: no later save exists for the straggler to clobber.
		m.unhealthy = true
		monitoring.TrackPersistFailure()
		m.logger.WithField("timeout", m.saveTimeout).
			Error("snapshot write timed out, outcome unknown, refusing further mutations")
		return fmt.Errorf("snapshot write timed out after %s: %w", m.saveTimeout, ctx.Err())
	}
	if err == nil {
		m.failures = 0
		return nil
	}

	m.failures++
	monitoring.TrackPersistFailure()
	fields := log.Fields{"error": err, "consecutive_failures": m.failures}
	if m.failures >= maxSaveFailures {
		m.unhealthy = true
		m.logger.WithFields(fields).Error("snapshot writes keep failing, refusing further mutations")
	} else {
		m.logger.WithFields(fields).Error("snapshot write failed, mutation rolled back")
	}
	return fmt.Errorf("persist queue state: %w", err)
}
