package saved

import (
	"context"

	"github.com/herathmmr/stash/internal/domain"
	"github.com/herathmmr/stash/internal/logger"
)

// Deletion from the saved list is two-phase: RequestDelete parks the item
// behind a confirmation token, ConfirmDelete executes it, CancelDelete
// aborts it. One pending deletion per user; unconfirmed requests expire and
// are swept.

// flow returns the user's delete flow, creating it on first use.
// Caller must hold s.mu.
func (s *Service) flow(user string) *domain.DeleteFlow {
	f, ok := s.flows[user]
	if !ok {
		f = &domain.DeleteFlow{}
		s.flows[user] = f
	}
	return f
}

// RequestDelete starts the confirmation phase for an item the user has saved.
func (s *Service) RequestDelete(ctx context.Context, user string, kind domain.Kind, id string) (*domain.PendingDelete, error) {
	if !s.Contains(ctx, user, kind, id) {
		return nil, ErrItemNotSaved
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.flow(user).Request(kind, id, s.newToken(), s.timeNow(), s.deleteTTL)
}

// ConfirmDelete completes a pending deletion and removes the item.
func (s *Service) ConfirmDelete(ctx context.Context, user, token string) error {
	s.mu.Lock()
	pending, err := s.flow(user).Confirm(token, s.timeNow())
	s.mu.Unlock()
	if err != nil {
		return err
	}

	switch pending.Kind {
	case domain.KindNews:
		s.RemoveNews(ctx, user, pending.ItemID)
	case domain.KindJobs:
		s.RemoveJob(ctx, user, pending.ItemID)
	}

	s.logger.Info("saved item deleted",
		logger.String("user", user),
		logger.String("kind", string(pending.Kind)),
		logger.String("item", pending.ItemID))
	return nil
}

// CancelDelete aborts the pending deletion. The collection is untouched.
func (s *Service) CancelDelete(user string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.flow(user).Cancel()
}

// SweepExpiredDeletes drops delete flows whose pending request outlived its
// deadline, plus resolved flows that will never be consulted again. Returns
// the number of expired pendings abandoned.
func (s *Service) SweepExpiredDeletes() int {
	now := s.timeNow()

	s.mu.Lock()
	defer s.mu.Unlock()

	expired := 0
	for user, f := range s.flows {
		switch {
		case f.Expired(now):
			delete(s.flows, user)
			expired++
		case f.State() == domain.DeleteResolved:
			delete(s.flows, user)
		}
	}
	return expired
}

// PendingDeletes returns the number of deletions awaiting confirmation.
func (s *Service) PendingDeletes() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, f := range s.flows {
		if f.State() == domain.DeletePending {
			n++
		}
	}
	return n
}
