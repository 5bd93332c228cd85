package categories

import (
	"sync"
	"time"

	"github.com/herathmmr/stash/internal/domain"
)

// Catalog is the live category set, swapped wholesale on each reload.
type Catalog struct {
	mu         sync.RWMutex
	news       map[string]bool
	jobs       map[string]bool
	lastReload time.Time
}

// NewCatalog creates an empty catalog. An empty catalog knows no categories,
// so lookups return false until the first Update.
func NewCatalog() *Catalog {
	return &Catalog{
		news: make(map[string]bool),
		jobs: make(map[string]bool),
	}
}

// Update replaces the catalog contents from a freshly loaded config.
func (c *Catalog) Update(cfg *Config) {
	news := make(map[string]bool, len(cfg.News))
	for _, cat := range cfg.News {
		news[normalize(cat)] = true
	}
	jobs := make(map[string]bool, len(cfg.Jobs))
	for _, cat := range cfg.Jobs {
		jobs[normalize(cat)] = true
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.news = news
	c.jobs = jobs
	c.lastReload = time.Now()
}

// Known reports whether the category is listed for the kind.
func (c *Catalog) Known(kind domain.Kind, category string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch kind {
	case domain.KindNews:
		return c.news[normalize(category)]
	case domain.KindJobs:
		return c.jobs[normalize(category)]
	default:
		return false
	}
}

// Count returns the number of categories per kind, for the infra endpoint.
func (c *Catalog) Count() (news, jobs int) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.news), len(c.jobs)
}

// LastReload returns when the catalog was last updated.
func (c *Catalog) LastReload() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.lastReload
}
