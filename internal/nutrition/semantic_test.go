package nutrition

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/macromatch/internal/catalog"
)

// fakeEmbedder serves canned vectors and counts calls per text.
type fakeEmbedder struct {
	mu      sync.Mutex
	vectors map[string][]float32
	err     error
	calls   map[string]int
}

func newFakeEmbedder(vectors map[string][]float32) *fakeEmbedder {
	return &fakeEmbedder{vectors: vectors, calls: make(map[string]int)}
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[text]++
	if f.err != nil {
		return nil, f.err
	}
	vec, ok := f.vectors[text]
	if !ok {
		return nil, fmt.Errorf("no vector for %q", text)
	}
	return vec, nil
}

func (f *fakeEmbedder) callCount(text string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[text]
}

func TestSemanticMatcherResolve(t *testing.T) {
	ctx := context.Background()
	candidates := []catalog.FoodRecord{
		{Description: "olive oil", CaloriesPer100g: 884},
		{Description: "canola oil", CaloriesPer100g: 900},
		{Description: "honey", CaloriesPer100g: 304},
	}

	t.Run("picks the most similar candidate above the threshold", func(t *testing.T) {
		embedder := newFakeEmbedder(map[string][]float32{
			"evoo":       {1, 0, 0},
			"olive oil":  {0.95, 0.05, 0},
			"canola oil": {0.7, 0.7, 0},
			"honey":      {0, 1, 0},
		})
		m := NewSemanticMatcher(embedder, NewMemoryCache(), 0.72, time.Second)

		res := m.Resolve(ctx, "evoo", candidates)
		require.Equal(t, SemanticMatched, res.Outcome)
		assert.Equal(t, "olive oil", res.Record.Description)
		assert.Greater(t, res.Score, 0.72)
	})

	t.Run("no candidate clears the threshold", func(t *testing.T) {
		embedder := newFakeEmbedder(map[string][]float32{
			"evoo":       {1, 0, 0},
			"olive oil":  {0, 1, 0},
			"canola oil": {0, 0, 1},
			"honey":      {0, 1, 1},
		})
		m := NewSemanticMatcher(embedder, NewMemoryCache(), 0.72, time.Second)

		res := m.Resolve(ctx, "evoo", candidates)
		assert.Equal(t, SemanticNoMatch, res.Outcome)
	})

	t.Run("provider failure is unavailable, not an error", func(t *testing.T) {
		embedder := newFakeEmbedder(nil)
		embedder.err = fmt.Errorf("provider down")
		m := NewSemanticMatcher(embedder, NewMemoryCache(), 0.72, time.Second)

		res := m.Resolve(ctx, "evoo", candidates)
		assert.Equal(t, SemanticUnavailable, res.Outcome)
	})

	t.Run("empty candidate list is a no-match", func(t *testing.T) {
		embedder := newFakeEmbedder(nil)
		m := NewSemanticMatcher(embedder, NewMemoryCache(), 0.72, time.Second)

		res := m.Resolve(ctx, "evoo", nil)
		assert.Equal(t, SemanticNoMatch, res.Outcome)
		assert.Equal(t, 0, embedder.callCount("evoo"))
	})

	t.Run("ties keep the first candidate", func(t *testing.T) {
		embedder := newFakeEmbedder(map[string][]float32{
			"evoo":       {1, 0, 0},
			"olive oil":  {1, 0, 0},
			"canola oil": {1, 0, 0},
			"honey":      {0, 1, 0},
		})
		m := NewSemanticMatcher(embedder, NewMemoryCache(), 0.72, time.Second)

		res := m.Resolve(ctx, "evoo", candidates)
		require.Equal(t, SemanticMatched, res.Outcome)
		assert.Equal(t, "olive oil", res.Record.Description)
	})
}

func TestSemanticMatcherCachesEmbeddings(t *testing.T) {
	ctx := context.Background()
	embedder := newFakeEmbedder(map[string][]float32{
		"evoo":      {1, 0, 0},
		"olive oil": {0.9, 0.1, 0},
	})
	m := NewSemanticMatcher(embedder, NewMemoryCache(), 0.72, time.Second)
	candidates := []catalog.FoodRecord{{Description: "olive oil"}}

	for i := 0; i < 3; i++ {
		res := m.Resolve(ctx, "evoo", candidates)
		require.Equal(t, SemanticMatched, res.Outcome)
	}

	assert.Equal(t, 1, embedder.callCount("evoo"), "query should be embedded once")
	assert.Equal(t, 1, embedder.callCount("olive oil"), "candidate should be embedded once")
}

func TestSemanticMatcherNilCacheDefaultsToMemory(t *testing.T) {
	embedder := newFakeEmbedder(map[string][]float32{
		"evoo":      {1, 0, 0},
		"olive oil": {1, 0, 0},
	})
	m := NewSemanticMatcher(embedder, nil, 0.72, time.Second)

	res := m.Resolve(context.Background(), "evoo", []catalog.FoodRecord{{Description: "olive oil"}})
	assert.Equal(t, SemanticMatched, res.Outcome)
}
