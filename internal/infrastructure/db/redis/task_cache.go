package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/raceops/race-weekend-api/internal/api/metrics"
	"github.com/raceops/race-weekend-api/internal/core/domain"
)

const defaultCacheTTL = 30 * time.Second

// TaskCache caches rendered task listings in Redis for a short TTL.
// Invalidation is TTL-only; writers never bust entries explicitly.
type TaskCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewTaskCache creates a TaskCache wrapping the given Redis client.
func NewTaskCache(client *redis.Client, ttl time.Duration) *TaskCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &TaskCache{client: client, ttl: ttl}
}

func (c *TaskCache) Get(ctx context.Context, key string) ([]*domain.Task, bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.TaskCacheTotal.WithLabelValues("miss").Inc()
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("task cache get: %w", err)
	}

	var tasks []*domain.Task
	if err := json.Unmarshal(raw, &tasks); err != nil {
		return nil, false, fmt.Errorf("task cache decode: %w", err)
	}
	metrics.TaskCacheTotal.WithLabelValues("hit").Inc()
	return tasks, true, nil
}

func (c *TaskCache) Set(ctx context.Context, key string, tasks []*domain.Task) error {
	raw, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("task cache encode: %w", err)
	}
	return c.client.Set(ctx, key, raw, c.ttl).Err()
}
