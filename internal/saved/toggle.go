package saved

import (
	"context"
	"fmt"

	"github.com/herathmmr/stash/internal/domain"
)

// ToggleResult is what the toggle control renders after flipping membership.
type ToggleResult struct {
	Saved   bool   `json:"saved"`
	Message string `json:"message"`
}

const (
	msgAdded   = "Added to saved list!"
	msgRemoved = "Removed from saved list"
)

// Toggle flips membership of an item. Removing needs only the ID; adding
// fetches the canonical record from the content API and stores a snapshot
// stamped with the save time. Membership is re-read at call time, so the
// result always reflects the store, not stale UI state.
func (s *Service) Toggle(ctx context.Context, user string, kind domain.Kind, id string) (*ToggleResult, error) {
	switch kind {
	case domain.KindNews:
		return s.toggleNews(ctx, user, id)
	case domain.KindJobs:
		return s.toggleJobs(ctx, user, id)
	default:
		return nil, fmt.Errorf("unknown kind: %q", kind)
	}
}

func (s *Service) toggleNews(ctx context.Context, user, id string) (*ToggleResult, error) {
	items := s.LoadNews(ctx, user)

	if domain.ContainsNews(items, id) {
		s.saveNews(ctx, user, domain.RemoveNews(items, id))
		return &ToggleResult{Saved: false, Message: msgRemoved}, nil
	}

	article, err := s.source.Article(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot article %s: %w", id, err)
	}
	s.checkCategory(domain.KindNews, article.Category)

	item := domain.SavedNews{
		ID:          article.ID,
		Title:       article.Title,
		Author:      article.Author,
		Content:     article.Content,
		Category:    article.Category,
		ImageURL:    article.ImageURL,
		PublishedAt: article.PublishedAt,
		SavedAt:     s.timeNow(),
	}
	s.saveNews(ctx, user, domain.AddNews(items, item))
	return &ToggleResult{Saved: true, Message: msgAdded}, nil
}

func (s *Service) toggleJobs(ctx context.Context, user, id string) (*ToggleResult, error) {
	items := s.LoadJobs(ctx, user)

	if domain.ContainsJob(items, id) {
		s.saveJobs(ctx, user, domain.RemoveJob(items, id))
		return &ToggleResult{Saved: false, Message: msgRemoved}, nil
	}

	job, err := s.source.Job(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot job %s: %w", id, err)
	}
	s.checkCategory(domain.KindJobs, job.Category)

	item := domain.SavedJob{
		ID:          job.ID,
		Title:       job.Title,
		Company:     job.Company,
		Description: job.Description,
		Category:    job.Category,
		Location:    job.Location,
		Salary:      job.Salary,
		ImageURL:    job.ImageURL,
		ClosingDate: job.ClosingDate,
		SavedAt:     s.timeNow(),
	}
	s.saveJobs(ctx, user, domain.AddJob(items, item))
	return &ToggleResult{Saved: true, Message: msgAdded}, nil
}
