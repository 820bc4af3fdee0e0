package redis

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// NotebookStore implements usecase.NotebookStore using Redis. Each user's
// whole notebook collection lives under a single key and every write
// replaces the previous value; last write wins.
type NotebookStore struct {
	client *redis.Client
	prefix string
}

// NewNotebookStore creates a new NotebookStore.
func NewNotebookStore(client *redis.Client) *NotebookStore {
	return &NotebookStore{
		client: client,
		prefix: "notebook:",
	}
}

// Get retrieves a user's persisted collection. A user with no persisted
// collection reads as (nil, nil), not an error.
func (s *NotebookStore) Get(ctx context.Context, userID string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.prefix+userID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}

		return nil, err
	}

	return data, nil
}

// Set replaces a user's persisted collection. No TTL; the notebook lives
// until the user deletes it.
func (s *NotebookStore) Set(ctx context.Context, userID string, value []byte) error {
	return s.client.Set(ctx, s.prefix+userID, value, 0).Err()
}

// Delete removes a user's persisted collection.
func (s *NotebookStore) Delete(ctx context.Context, userID string) error {
	return s.client.Del(ctx, s.prefix+userID).Err()
}
