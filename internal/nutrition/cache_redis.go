package nutrition

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "embedding:"

// RedisCache layers Redis behind an in-process MemoryCache so embeddings
// survive restarts and are shared between instances. Redis failures are
// treated as cache misses; the matcher then re-embeds, which is safe.
type RedisCache struct {
	client *redis.Client
	local  *MemoryCache
}

// NewRedisCache creates an embedding cache backed by the given Redis
// client.
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{
		client: client,
		local:  NewMemoryCache(),
	}
}

func (c *RedisCache) Get(ctx context.Context, text string) ([]float32, bool) {
	if vec, ok := c.local.Get(ctx, text); ok {
		return vec, true
	}

	data, err := c.client.Get(ctx, redisKeyPrefix+text).Bytes()
	if err != nil {
		return nil, false
	}

	var vec []float32
	if err := json.Unmarshal(data, &vec); err != nil {
		return nil, false
	}

	c.local.Put(ctx, text, vec)
	return vec, true
}

func (c *RedisCache) Put(ctx context.Context, text string, vector []float32) {
	c.local.Put(ctx, text, vector)

	data, err := json.Marshal(vector)
	if err != nil {
		return
	}
	// Vectors are kept without expiry, matching the no-eviction contract
	// of the in-memory cache.
	_ = c.client.Set(ctx, redisKeyPrefix+text, data, 0).Err()
}

var _ EmbeddingCache = (*RedisCache)(nil)
var _ EmbeddingCache = (*MemoryCache)(nil)
