// Package saved owns the saved-items collections: loading, membership,
// toggling with content snapshots, the list view, and the two-phase delete
// flow. Every component that touches a collection goes through this service;
// nothing reads the slots directly.
package saved

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/herathmmr/stash/internal/content"
	"github.com/herathmmr/stash/internal/domain"
	"github.com/herathmmr/stash/internal/logger"
	"github.com/herathmmr/stash/internal/store/memory"
)

// ErrItemNotSaved is returned when a deletion is requested for an item that
// is not in the collection.
var ErrItemNotSaved = errors.New("item is not in the saved list")

// Store is the durable slot backend. The Redis store implements it; the
// in-memory store doubles as the test implementation.
type Store interface {
	LoadNews(ctx context.Context, user string) ([]domain.SavedNews, error)
	SaveNews(ctx context.Context, user string, items []domain.SavedNews) error
	LoadJobs(ctx context.Context, user string) ([]domain.SavedJob, error)
	SaveJobs(ctx context.Context, user string, items []domain.SavedJob) error
}

// ContentSource supplies the canonical records snapshotted at save time.
type ContentSource interface {
	Article(ctx context.Context, id string) (*content.Article, error)
	Job(ctx context.Context, id string) (*content.Job, error)
}

// CategorySet reports whether a category is a known portal category.
// May be nil; unknown categories are only logged, never rejected, since the
// content API stays canonical.
type CategorySet interface {
	Known(kind domain.Kind, category string) bool
}

// Service composes the durable store with the in-memory fallback.
//
// Reads prefer the durable store and mirror into the fallback; when the
// durable store is unreachable they degrade to the fallback. Writes always
// land in the fallback first, then best-effort in the durable store — a
// failed durable write marks the slot dirty for the flush scheduler instead
// of failing the user action.
type Service struct {
	durable    Store
	fallback   *memory.Store
	source     ContentSource
	categories CategorySet
	logger     logger.Logger

	deleteTTL time.Duration
	timeNow   func() time.Time
	newToken  func() string

	mu    sync.Mutex
	flows map[string]*domain.DeleteFlow
}

// Options configures optional Service behavior.
type Options struct {
	// DeleteConfirmTTL bounds how long a pending deletion may wait for
	// confirmation. Defaults to 2 minutes.
	DeleteConfirmTTL time.Duration

	// TimeNow overrides the clock, for tests.
	TimeNow func() time.Time

	// NewToken overrides confirmation token generation, for tests.
	NewToken func() string

	// Categories validates snapshot categories on save. Optional.
	Categories CategorySet
}

// DefaultDeleteConfirmTTL is how long a pending deletion waits before the
// sweeper abandons it.
const DefaultDeleteConfirmTTL = 2 * time.Minute

// NewService creates the saved-items service.
func NewService(durable Store, fallback *memory.Store, source ContentSource, log logger.Logger, opts Options) *Service {
	if opts.DeleteConfirmTTL <= 0 {
		opts.DeleteConfirmTTL = DefaultDeleteConfirmTTL
	}
	if opts.TimeNow == nil {
		opts.TimeNow = time.Now
	}
	if opts.NewToken == nil {
		opts.NewToken = uuid.NewString
	}

	return &Service{
		durable:    durable,
		fallback:   fallback,
		source:     source,
		categories: opts.Categories,
		logger:     log,
		deleteTTL:  opts.DeleteConfirmTTL,
		timeNow:    opts.TimeNow,
		newToken:   opts.NewToken,
		flows:      make(map[string]*domain.DeleteFlow),
	}
}

// LoadNews returns the user's saved-news collection, falling back to the
// in-memory mirror when the durable store is unreachable. Never errors: the
// worst case is an empty collection.
func (s *Service) LoadNews(ctx context.Context, user string) []domain.SavedNews {
	if s.durable != nil {
		items, err := s.durable.LoadNews(ctx, user)
		if err == nil {
			_ = s.fallback.SaveNews(ctx, user, items)
			return items
		}
		s.logger.Warn("durable store unavailable, serving news from memory",
			logger.String("user", user),
			logger.Error(err))
	}

	items, _ := s.fallback.LoadNews(ctx, user)
	return items
}

// LoadJobs returns the user's saved-jobs collection with the same degraded
// behavior as LoadNews.
func (s *Service) LoadJobs(ctx context.Context, user string) []domain.SavedJob {
	if s.durable != nil {
		items, err := s.durable.LoadJobs(ctx, user)
		if err == nil {
			_ = s.fallback.SaveJobs(ctx, user, items)
			return items
		}
		s.logger.Warn("durable store unavailable, serving jobs from memory",
			logger.String("user", user),
			logger.Error(err))
	}

	items, _ := s.fallback.LoadJobs(ctx, user)
	return items
}

// Contains reports membership of an item in the user's collection.
func (s *Service) Contains(ctx context.Context, user string, kind domain.Kind, id string) bool {
	switch kind {
	case domain.KindNews:
		return domain.ContainsNews(s.LoadNews(ctx, user), id)
	case domain.KindJobs:
		return domain.ContainsJob(s.LoadJobs(ctx, user), id)
	default:
		return false
	}
}

// List assembles the saved-list view: both collections filtered by search,
// narrowed by tab, with count badges and the list state.
func (s *Service) List(ctx context.Context, user string, tab domain.Tab, search string) domain.ListView {
	news := s.LoadNews(ctx, user)
	jobs := s.LoadJobs(ctx, user)
	return domain.BuildListView(news, jobs, tab, search)
}

// saveNews writes the collection to the fallback, then best-effort to the
// durable store. A failed durable write degrades silently to memory-only and
// marks the slot dirty.
func (s *Service) saveNews(ctx context.Context, user string, items []domain.SavedNews) {
	_ = s.fallback.SaveNews(ctx, user, items)

	if s.durable == nil {
		s.fallback.MarkDirty(user, domain.KindNews)
		return
	}
	if err := s.durable.SaveNews(ctx, user, items); err != nil {
		s.logger.Warn("durable news write failed, kept in memory for flush",
			logger.String("user", user),
			logger.Error(err))
		s.fallback.MarkDirty(user, domain.KindNews)
	}
}

func (s *Service) saveJobs(ctx context.Context, user string, items []domain.SavedJob) {
	_ = s.fallback.SaveJobs(ctx, user, items)

	if s.durable == nil {
		s.fallback.MarkDirty(user, domain.KindJobs)
		return
	}
	if err := s.durable.SaveJobs(ctx, user, items); err != nil {
		s.logger.Warn("durable jobs write failed, kept in memory for flush",
			logger.String("user", user),
			logger.Error(err))
		s.fallback.MarkDirty(user, domain.KindJobs)
	}
}

// RemoveNews filters the item out of the collection. No-op if absent.
func (s *Service) RemoveNews(ctx context.Context, user, id string) {
	items := s.LoadNews(ctx, user)
	s.saveNews(ctx, user, domain.RemoveNews(items, id))
}

// RemoveJob filters the item out of the collection. No-op if absent.
func (s *Service) RemoveJob(ctx context.Context, user, id string) {
	items := s.LoadJobs(ctx, user)
	s.saveJobs(ctx, user, domain.RemoveJob(items, id))
}

// checkCategory logs snapshot categories the portal does not list.
func (s *Service) checkCategory(kind domain.Kind, category string) {
	if s.categories == nil || category == "" {
		return
	}
	if !s.categories.Known(kind, category) {
		s.logger.Debug("snapshot category not in portal categories",
			logger.String("kind", string(kind)),
			logger.String("category", category))
	}
}
