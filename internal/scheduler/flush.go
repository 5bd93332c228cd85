package scheduler

import (
	"context"
	"time"

	"github.com/herathmmr/stash/internal/domain"
	"github.com/herathmmr/stash/internal/logger"
	"github.com/herathmmr/stash/internal/saved"
	"github.com/herathmmr/stash/internal/store/memory"
)

// FlushScheduler pushes slots written in degraded mode back to the durable
// store once it is reachable again. The first durable failure aborts the
// cycle: there is no point hammering a store that is still down.
type FlushScheduler struct {
	durable  saved.Store
	fallback *memory.Store
	logger   logger.Logger
	interval time.Duration
	stopCh   chan struct{}
}

// NewFlushScheduler creates a new flush scheduler.
func NewFlushScheduler(
	durable saved.Store,
	fallback *memory.Store,
	log logger.Logger,
	interval time.Duration,
) *FlushScheduler {
	return &FlushScheduler{
		durable:  durable,
		fallback: fallback,
		logger:   log,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the periodic flush loop.
func (fs *FlushScheduler) Start(ctx context.Context) {
	ticker := time.NewTicker(fs.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				fs.Flush(ctx)
			case <-fs.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop stops the scheduler.
func (fs *FlushScheduler) Stop() {
	close(fs.stopCh)
}

// Flush writes every dirty slot to the durable store and returns how many
// slots were flushed.
func (fs *FlushScheduler) Flush(ctx context.Context) int {
	slots := fs.fallback.DirtySlots()
	if len(slots) == 0 {
		return 0
	}

	fs.logger.Info("flushing degraded-mode slots to durable store",
		logger.Int("slots", len(slots)))

	flushed := 0
	for _, slot := range slots {
		if err := fs.flushSlot(ctx, slot); err != nil {
			fs.logger.Warn("durable store still unavailable, flush postponed",
				logger.String("user", slot.User),
				logger.String("kind", string(slot.Kind)),
				logger.Error(err))
			return flushed
		}
		fs.fallback.ClearDirty(slot)
		flushed++
	}

	fs.logger.Info("flush complete", logger.Int("flushed", flushed))
	return flushed
}

func (fs *FlushScheduler) flushSlot(ctx context.Context, slot memory.Slot) error {
	switch slot.Kind {
	case domain.KindNews:
		items, err := fs.fallback.LoadNews(ctx, slot.User)
		if err != nil {
			return err
		}
		return fs.durable.SaveNews(ctx, slot.User, items)
	default:
		items, err := fs.fallback.LoadJobs(ctx, slot.User)
		if err != nil {
			return err
		}
		return fs.durable.SaveJobs(ctx, slot.User, items)
	}
}
