package registry

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// CachedClient caches registry state lookups in Redis. Registry state can
// change out-of-band, so entries carry a short TTL; a cache failure falls
// through to the underlying client.
type CachedClient struct {
	inner  Client
	cache  *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewCachedClient(inner Client, cache *redis.Client, ttl time.Duration, logger *slog.Logger) *CachedClient {
	return &CachedClient{inner: inner, cache: cache, ttl: ttl, logger: logger}
}

func (c *CachedClient) State(ctx context.Context, name string) (State, error) {
	key := cacheKey(name)
	if cached, err := c.cache.Get(ctx, key).Result(); err == nil {
		return State(cached), nil
	} else if err != redis.Nil {
		c.logger.WarnContext(ctx, "registry state cache read failed", "name", name, "error", err)
	}

	state, err := c.inner.State(ctx, name)
	if err != nil {
		return state, err
	}
	if err := c.cache.Set(ctx, key, string(state), c.ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "registry state cache write failed", "name", name, "error", err)
	}
	return state, nil
}

// Delete passes through and drops the cached state, which is stale the
// moment the registry accepts the deletion.
func (c *CachedClient) Delete(ctx context.Context, name string) error {
	if err := c.inner.Delete(ctx, name); err != nil {
		return err
	}
	if err := c.cache.Del(ctx, cacheKey(name)).Err(); err != nil {
		c.logger.WarnContext(ctx, "registry state cache invalidation failed", "name", name, "error", err)
	}
	return nil
}

func cacheKey(name string) string {
	return "registry:state:" + name
}
