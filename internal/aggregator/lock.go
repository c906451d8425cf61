package aggregator

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RefreshLock guards against overlapping refresh runs. Acquire returns
// false without error when another run currently holds the lock.
type RefreshLock interface {
	Acquire(ctx context.Context) (bool, error)
	Release(ctx context.Context)
}

// redisLock implements RefreshLock with a Redis SET NX key. The TTL bounds
// how long a crashed run can keep other runs out.
type redisLock struct {
	rdb *redis.Client
	key string
	ttl time.Duration
}

// NewRedisLock returns a RefreshLock backed by rdb.
func NewRedisLock(rdb *redis.Client) RefreshLock {
	return &redisLock{
		rdb: rdb,
		key: "aggregator:refresh:lock",
		ttl: 30 * time.Minute,
	}
}

func (l *redisLock) Acquire(ctx context.Context) (bool, error) {
	ok, err := l.rdb.SetNX(ctx, l.key, time.Now().UTC().Format(time.RFC3339), l.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("refresh lock acquire: %w", err)
	}
	return ok, nil
}

func (l *redisLock) Release(ctx context.Context) {
	// Best effort — the TTL cleans up if the delete is lost.
	l.rdb.Del(ctx, l.key)
}
