package domain

import (
	"errors"
	"time"
)

// Deleting from the saved list is two-phase: the user requests a deletion,
// then confirms or cancels it. The flow is an explicit three-state machine so
// that only one deletion can ever be pending at a time per user.

// DeleteState is the current phase of a user's delete flow.
type DeleteState int

const (
	// DeleteIdle means no deletion is in flight.
	DeleteIdle DeleteState = iota
	// DeletePending means a deletion was requested and awaits confirmation.
	DeletePending
	// DeleteResolved means the pending deletion was confirmed or cancelled.
	// The flow resets to idle on the next request.
	DeleteResolved
)

var (
	// ErrDeleteAlreadyPending is returned when a second deletion is requested
	// while one is still awaiting confirmation.
	ErrDeleteAlreadyPending = errors.New("a deletion is already pending confirmation")

	// ErrNoPendingDelete is returned when confirm/cancel arrives with nothing pending.
	ErrNoPendingDelete = errors.New("no deletion pending")

	// ErrDeleteTokenMismatch is returned when the confirmation token does not
	// match the pending request.
	ErrDeleteTokenMismatch = errors.New("confirmation token does not match pending deletion")

	// ErrDeleteExpired is returned when the pending deletion outlived its deadline.
	ErrDeleteExpired = errors.New("pending deletion has expired")
)

// PendingDelete describes the deletion awaiting confirmation.
type PendingDelete struct {
	Token       string    `json:"token"`
	Kind        Kind      `json:"kind"`
	ItemID      string    `json:"item_id"`
	RequestedAt time.Time `json:"requested_at"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// DeleteFlow tracks one user's delete confirmation state.
// Not safe for concurrent use; callers serialize access.
type DeleteFlow struct {
	state   DeleteState
	pending *PendingDelete
}

// State returns the current phase.
func (f *DeleteFlow) State() DeleteState {
	return f.state
}

// Pending returns the in-flight deletion, or nil when idle/resolved.
func (f *DeleteFlow) Pending() *PendingDelete {
	if f.state != DeletePending {
		return nil
	}
	return f.pending
}

// Request moves idle → pending. A resolved flow resets first; a still-pending
// flow rejects the request unless the previous one has expired.
func (f *DeleteFlow) Request(kind Kind, itemID, token string, now time.Time, ttl time.Duration) (*PendingDelete, error) {
	if f.state == DeletePending {
		if !f.Expired(now) {
			return nil, ErrDeleteAlreadyPending
		}
		// Expired pending requests are abandoned, not blocking.
		f.reset()
	}

	f.pending = &PendingDelete{
		Token:       token,
		Kind:        kind,
		ItemID:      itemID,
		RequestedAt: now,
		ExpiresAt:   now.Add(ttl),
	}
	f.state = DeletePending
	return f.pending, nil
}

// Confirm moves pending → resolved and returns what to delete.
// The token must match and the deadline must not have passed.
func (f *DeleteFlow) Confirm(token string, now time.Time) (*PendingDelete, error) {
	if f.state != DeletePending {
		return nil, ErrNoPendingDelete
	}
	if f.pending.Token != token {
		return nil, ErrDeleteTokenMismatch
	}
	if f.Expired(now) {
		f.reset()
		return nil, ErrDeleteExpired
	}

	p := f.pending
	f.pending = nil
	f.state = DeleteResolved
	return p, nil
}

// Cancel aborts the pending deletion. The store is left untouched.
func (f *DeleteFlow) Cancel() error {
	if f.state != DeletePending {
		return ErrNoPendingDelete
	}
	f.pending = nil
	f.state = DeleteResolved
	return nil
}

// Expired reports whether the pending deletion outlived its deadline.
func (f *DeleteFlow) Expired(now time.Time) bool {
	return f.state == DeletePending && now.After(f.pending.ExpiresAt)
}

func (f *DeleteFlow) reset() {
	f.pending = nil
	f.state = DeleteIdle
}
