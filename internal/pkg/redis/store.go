package redis

import (
	"MindGarden/internal/pkg/consts"
	"context"
	"time"
)

// Store exposes the Redis primitives used by services, jobs and middleware
// on top of the shared client.
type Store struct{}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) TryLock(ctx context.Context, key, token string, ttl time.Duration, retries int) (bool, error) {
	return TryLock(ctx, key, token, ttl, retries)
}

func (s *Store) Unlock(ctx context.Context, key, token string) {
	UnLock(ctx, key, token)
}

// MarkDirty queues members for the next insight recompute.
func (s *Store) MarkDirty(ctx context.Context, members ...string) error {
	return AddToSet(ctx, consts.InsightDirtyKey, members...)
}

// Drain moves the dirty set aside and returns its members. Leftovers of an
// interrupted run are returned first instead of being overwritten.
func (s *Store) Drain(ctx context.Context) ([]string, error) {
	exists, err := Rdb.Exists(ctx, consts.InsightDirtyProcessingKey).Result()
	if err != nil {
		return nil, err
	}
	if exists == 0 {
		ok, err := Rename(ctx, consts.InsightDirtyKey, consts.InsightDirtyProcessingKey)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, nil
		}
	}
	return GetSet(ctx, consts.InsightDirtyProcessingKey)
}

// Ack drops the processing set once every member was handled.
func (s *Store) Ack(ctx context.Context) error {
	return DeleteKey(ctx, consts.InsightDirtyProcessingKey)
}

// Hit counts one request in a fixed window and reports the count so far and
// the time left in the window.
func (s *Store) Hit(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	count, err := IncrWithExpire(ctx, consts.RateLimitKey+key, window)
	if err != nil {
		return 0, 0, err
	}
	ttl, err := TTL(ctx, consts.RateLimitKey+key)
	if err != nil {
		return count, 0, err
	}
	return count, ttl, nil
}
