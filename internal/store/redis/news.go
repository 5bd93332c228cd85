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

// LoadNews retrieves a user's saved-news collection.
// A missing slot is an empty collection. A corrupt payload (older release,
// manual tampering) is treated as empty rather than surfaced: the slot will
// be rewritten wholesale on the next save.
func (s *Store) LoadNews(ctx context.Context, user string) ([]domain.SavedNews, error) {
	key := NewsSlotKey(user)
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return []domain.SavedNews{}, nil
		}
		return nil, fmt.Errorf("failed to load news slot: %w", err)
	}

	items, err := decodeSlot[domain.SavedNews](data)
	if err != nil {
		s.logger.Warn("corrupt news slot, treating as empty",
			logger.String("key", key),
			logger.Error(err))
	}

	return items, nil
}

// SaveNews overwrites a user's saved-news slot with the full collection.
func (s *Store) SaveNews(ctx context.Context, user string, items []domain.SavedNews) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal news slot: %w", err)
	}

	if err := s.client.Set(ctx, NewsSlotKey(user), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save news slot: %w", err)
	}

	return nil
}
