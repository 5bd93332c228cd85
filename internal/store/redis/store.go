package redis

import (
	"github.com/redis/go-redis/v9"

	"github.com/herathmmr/stash/internal/logger"
)

// Store persists saved-items collections in Redis, one whole slot per user
// and kind. A slot is read and written as a single serialized sequence, the
// same contract the portal front end has with its local storage: concurrent
// writers of one slot race last-write-wins, which is accepted.
type Store struct {
	client *redis.Client
	logger logger.Logger
}

// NewStore creates a new Redis-backed saved-items store.
func NewStore(client *redis.Client, log logger.Logger) *Store {
	return &Store{
		client: client,
		logger: log,
	}
}
