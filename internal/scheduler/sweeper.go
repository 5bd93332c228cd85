package scheduler

import (
	"context"
	"time"

	"github.com/herathmmr/stash/internal/logger"
	"github.com/herathmmr/stash/internal/saved"
)

// PendingSweeper abandons delete confirmations that were never answered.
// Runs once on start, then on a ticker.
type PendingSweeper struct {
	service  *saved.Service
	logger   logger.Logger
	interval time.Duration
	stopCh   chan struct{}
}

// NewPendingSweeper creates a new sweeper.
func NewPendingSweeper(
	service *saved.Service,
	log logger.Logger,
	interval time.Duration,
) *PendingSweeper {
	return &PendingSweeper{
		service:  service,
		logger:   log,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the periodic sweep.
func (ps *PendingSweeper) Start(ctx context.Context) {
	ps.Sweep()

	ticker := time.NewTicker(ps.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				ps.Sweep()
			case <-ps.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop stops the sweeper.
func (ps *PendingSweeper) Stop() {
	close(ps.stopCh)
}

// Sweep drops expired pending deletions.
func (ps *PendingSweeper) Sweep() {
	if expired := ps.service.SweepExpiredDeletes(); expired > 0 {
		ps.logger.Info("abandoned expired delete confirmations",
			logger.Int("count", expired))
	}
}
