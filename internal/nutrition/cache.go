package nutrition

import (
	"context"
	"sync"
)

// EmbeddingCache stores embedding vectors keyed by the exact text sent to
// the provider, so each distinct text is embedded at most once. Racing
// inserts for the same key are harmless: the provider is deterministic per
// text, so last write wins with an identical value.
type EmbeddingCache interface {
	Get(ctx context.Context, text string) ([]float32, bool)
	Put(ctx context.Context, text string, vector []float32)
}

// MemoryCache is the default process-wide embedding cache. It never
// evicts: the key space is bounded by the vocabulary of ingredient names
// and catalog descriptions.
type MemoryCache struct {
	mu      sync.RWMutex
	vectors map[string][]float32
}

// NewMemoryCache creates an empty in-memory embedding cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{vectors: make(map[string][]float32)}
}

func (c *MemoryCache) Get(_ context.Context, text string) ([]float32, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	vec, ok := c.vectors[text]
	return vec, ok
}

func (c *MemoryCache) Put(_ context.Context, text string, vector []float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vectors[text] = vector
}

// Len reports how many distinct texts are cached.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.vectors)
}

// Reset drops all cached vectors. Intended for tests.
func (c *MemoryCache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vectors = make(map[string][]float32)
}
