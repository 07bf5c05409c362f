// ABOUTME: Optional Redis cache for per-user task lists
// ABOUTME: Best-effort read-through cache, invalidated on add/delete

package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/2389/taskdeck/internal/store"
)

// defaultTTL bounds staleness when an invalidation is lost.
const defaultTTL = 5 * time.Minute

// TaskCache caches each user's full task list in Redis. All operations
// are best-effort: a cache failure is logged and the caller falls back to
// the store. A nil *TaskCache is valid and always misses, so callers
// don't need to branch on whether caching is enabled.
type TaskCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// New connects to Redis and verifies the connection with a ping.
func New(addr, password string, db int, ttl time.Duration) (*TaskCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}

	if ttl <= 0 {
		ttl = defaultTTL
	}

	return &TaskCache{
		client: client,
		ttl:    ttl,
		logger: slog.Default().With("component", "cache"),
	}, nil
}

// key returns the cache key for a user's task list.
func key(ownerID string) string {
	return "tasks:" + ownerID
}

// Get returns the cached task list for a user, or ok=false on a miss or
// any cache failure.
func (c *TaskCache) Get(ctx context.Context, ownerID string) ([]*store.Task, bool) {
	if c == nil {
		return nil, false
	}

	val, err := c.client.Get(ctx, key(ownerID)).Result()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.logger.Warn("cache get failed", "owner", ownerID, "error", err)
		return nil, false
	}

	var tasks []*store.Task
	if err := json.Unmarshal([]byte(val), &tasks); err != nil {
		c.logger.Warn("cache entry corrupt, dropping", "owner", ownerID, "error", err)
		c.Invalidate(ctx, ownerID)
		return nil, false
	}

	return tasks, true
}

// Set stores a user's task list with the configured TTL.
func (c *TaskCache) Set(ctx context.Context, ownerID string, tasks []*store.Task) {
	if c == nil {
		return
	}

	data, err := json.Marshal(tasks)
	if err != nil {
		c.logger.Warn("marshaling task list for cache failed", "owner", ownerID, "error", err)
		return
	}

	if err := c.client.Set(ctx, key(ownerID), data, c.ttl).Err(); err != nil {
		c.logger.Warn("cache set failed", "owner", ownerID, "error", err)
	}
}

// Invalidate drops a user's cached task list. Called after any mutation
// of that user's tasks.
func (c *TaskCache) Invalidate(ctx context.Context, ownerID string) {
	if c == nil {
		return
	}

	if err := c.client.Del(ctx, key(ownerID)).Err(); err != nil {
		c.logger.Warn("cache invalidate failed", "owner", ownerID, "error", err)
	}
}

// Close releases the Redis connection.
func (c *TaskCache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
