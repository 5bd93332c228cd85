package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/herathmmr/stash/internal/logger"
	"github.com/herathmmr/stash/internal/sources/categories"
)

// CategoriesReloader keeps the category catalog in sync with categories.yaml:
// one load on start, then periodic reloads plus a manual trigger channel.
type CategoriesReloader struct {
	loader        *categories.Loader
	catalog       *categories.Catalog
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewCategoriesReloader creates a new categories reloader.
func NewCategoriesReloader(
	categoriesFile string,
	catalog *categories.Catalog,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *CategoriesReloader {
	return &CategoriesReloader{
		loader:        categories.NewLoader(categoriesFile),
		catalog:       catalog,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start loads once and begins the periodic reload loop.
func (cr *CategoriesReloader) Start(ctx context.Context) error {
	if err := cr.Reload(); err != nil {
		return fmt.Errorf("initial categories load failed: %w", err)
	}

	ticker := time.NewTicker(cr.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := cr.Reload(); err != nil {
					cr.logger.Error("failed to reload categories",
						logger.Error(err))
				}
			case <-cr.manualTrigger:
				cr.logger.Info("manual categories reload triggered")
				if err := cr.Reload(); err != nil {
					cr.logger.Error("failed to reload categories",
						logger.Error(err))
				}
			case <-cr.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the reloader.
func (cr *CategoriesReloader) Stop() {
	close(cr.stopCh)
}

// Reload parses the categories file and swaps the catalog contents.
// A failed reload keeps the previous catalog.
func (cr *CategoriesReloader) Reload() error {
	cfg, err := cr.loader.Load()
	if err != nil {
		return err
	}

	cr.catalog.Update(cfg)
	cr.logger.Info("categories reloaded",
		logger.Int("news", len(cfg.News)),
		logger.Int("jobs", len(cfg.Jobs)))
	return nil
}
