package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/herathmmr/stash/internal/domain"
	"github.com/herathmmr/stash/internal/logger"
)

// LoadJobs retrieves a user's saved-jobs collection.
// Missing and corrupt slots degrade to an empty collection, same as LoadNews.
func (s *Store) LoadJobs(ctx context.Context, user string) ([]domain.SavedJob, error) {
	key := JobsSlotKey(user)
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return []domain.SavedJob{}, nil
		}
		return nil, fmt.Errorf("failed to load jobs slot: %w", err)
	}

	items, err := decodeSlot[domain.SavedJob](data)
	if err != nil {
		s.logger.Warn("corrupt jobs slot, treating as empty",
			logger.String("key", key),
			logger.Error(err))
	}

	return items, nil
}

// SaveJobs overwrites a user's saved-jobs slot with the full collection.
func (s *Store) SaveJobs(ctx context.Context, user string, items []domain.SavedJob) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal jobs slot: %w", err)
	}

	if err := s.client.Set(ctx, JobsSlotKey(user), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save jobs slot: %w", err)
	}

	return nil
}
