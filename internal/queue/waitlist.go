package queue

// UserID is an opaque Slack user identifier (the "UXXXXXXXX" token).
type UserID string

// maxSelfChain caps how many back-to-back slots one user may hold while the
// queue contains nobody else.
const maxSelfChain = 3

// Waitlist is the ordered line for the printer, front at index 0. It is a
// plain data structure: no locking, no I/O, no logging. Manager owns all of
// that.
type Waitlist struct {
	entries []UserID
}

// NewWaitlist builds a waitlist holding the given order, front first.
func NewWaitlist(entries []UserID) *Waitlist {
	return &Waitlist{entries: append([]UserID(nil), entries...)}
}

// Add appends a slot for id at the back and returns its 1-based position.
//
// Two admission rules apply. While the queue holds only entries for id (a
// self-chain grown from empty), up to maxSelfChain slots are allowed and the
// next is rejected with ErrQueueFull. Once anyone else is in line, taking the
// slot directly behind your own is rejected with ErrBackToBack.
func (w *Waitlist) Add(id UserID) (int, error) {
	if len(w.entries) > 0 {
		if w.isSelfChain(id) {
			if len(w.entries) >= maxSelfChain {
				return 0, ErrQueueFull
			}
		} else if w.entries[len(w.entries)-1] == id {
			return 0, ErrBackToBack
		}
	}
	w.entries = append(w.entries, id)
	return len(w.entries), nil
}

// isSelfChain reports whether the queue currently holds only entries for id.
// The allowance resets whenever the queue drains: it is computed from the
// current contents, not from history.
func (w *Waitlist) isSelfChain(id UserID) bool {
	if len(w.entries) == 0 {
		return false
	}
	for _, e := range w.entries {
		if e != id {
			return false
		}
	}
	return true
}

// RemoveFront pops the front slot if it belongs to id. On success the second
// return reports whether somebody was promoted to the front, and the first
// return is who.
func (w *Waitlist) RemoveFront(id UserID) (UserID, bool, error) {
	if len(w.entries) == 0 {
		return "", false, ErrQueueEmpty
	}
	if w.entries[0] != id {
		return "", false, ErrNotAtFront
	}
	w.entries = w.entries[1:]
	if len(w.entries) == 0 {
		return "", false, nil
	}
	return w.entries[0], true, nil
}

// RemoveSelf drops the closest-to-front slot owned by id that is not the
// front slot. The front slot is the one being served and must leave through
// RemoveFront, so holding only that slot is ErrAtFront.
//
// Removing a middle slot may bring two slots of the same user together, e.g.
// [A B A C] minus B is [A A C]. That state is legal: the admission rules
// constrain adds only, and the owner of the pair simply takes two turns in a
// row.
func (w *Waitlist) RemoveSelf(id UserID) error {
	found := false
	for i, e := range w.entries {
		if e != id {
			continue
		}
		found = true
		if i == 0 {
			continue
		}
		w.entries = append(w.entries[:i], w.entries[i+1:]...)
		return nil
	}
	if found {
		return ErrAtFront
	}
	return ErrNotFound
}

// Snapshot returns a copy of the order, front first.
func (w *Waitlist) Snapshot() []UserID {
	return append([]UserID(nil), w.entries...)
}

// Len is the number of occupied slots.
func (w *Waitlist) Len() int { return len(w.entries) }
