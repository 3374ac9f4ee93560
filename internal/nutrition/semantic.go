package nutrition

import (
	"context"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pageza/macromatch/internal/catalog"
)

// Embedder turns text into an embedding vector. The HTTP client in
// internal/embedding implements it; tests substitute fakes.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// SemanticOutcome tags the result of a semantic resolution attempt. The
// resolver branches on the tag instead of catching errors.
type SemanticOutcome int

const (
	// SemanticMatched means a candidate cleared the similarity threshold.
	SemanticMatched SemanticOutcome = iota
	// SemanticNoMatch means every candidate scored below the threshold.
	SemanticNoMatch
	// SemanticUnavailable means the embedding provider failed; the caller
	// falls back to lexical matching.
	SemanticUnavailable
)

// SemanticResult is the outcome of matching a name against candidates by
// embedding similarity. Record and Score are only meaningful when Outcome
// is SemanticMatched.
type SemanticResult struct {
	Outcome SemanticOutcome
	Record  catalog.FoodRecord
	Score   float64
}

// SemanticMatcher ranks candidates by cosine similarity of embedding
// vectors, consulting the shared cache before calling the provider.
type SemanticMatcher struct {
	embedder  Embedder
	cache     EmbeddingCache
	threshold float64
	timeout   time.Duration
}

// NewSemanticMatcher wires an embedder and cache into a matcher.
// threshold is the minimum cosine similarity for a match.
func NewSemanticMatcher(embedder Embedder, cache EmbeddingCache, threshold float64, timeout time.Duration) *SemanticMatcher {
	if cache == nil {
		cache = NewMemoryCache()
	}
	return &SemanticMatcher{
		embedder:  embedder,
		cache:     cache,
		threshold: threshold,
		timeout:   timeout,
	}
}

// Resolve embeds the query name and every candidate description, then
// picks the highest-scoring candidate above the threshold. Candidate
// embeddings are fetched concurrently; any provider error makes the whole
// attempt Unavailable so the caller can fall back to lexical matching.
func (m *SemanticMatcher) Resolve(ctx context.Context, name string, candidates []catalog.FoodRecord) SemanticResult {
	if len(candidates) == 0 {
		return SemanticResult{Outcome: SemanticNoMatch}
	}

	queryVec, err := m.embed(ctx, name)
	if err != nil {
		log.Printf("Embedding query %q failed, falling back to lexical matching: %v", name, err)
		return SemanticResult{Outcome: SemanticUnavailable}
	}

	vectors := make([][]float32, len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	for i, candidate := range candidates {
		g.Go(func() error {
			vec, err := m.embed(gctx, candidate.Description)
			if err != nil {
				return err
			}
			vectors[i] = vec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Printf("Embedding candidates for %q failed, falling back to lexical matching: %v", name, err)
		return SemanticResult{Outcome: SemanticUnavailable}
	}

	best := SemanticResult{Outcome: SemanticNoMatch}
	for i, candidate := range candidates {
		score := CosineSimilarity(queryVec, vectors[i])
		if score < m.threshold {
			continue
		}
		// Strict comparison keeps the first of tied candidates, so the
		// result is stable for a fixed candidate order.
		if best.Outcome != SemanticMatched || score > best.Score {
			best = SemanticResult{Outcome: SemanticMatched, Record: candidate, Score: score}
		}
	}
	return best
}

// embed returns the cached vector for text, or fetches and caches it.
func (m *SemanticMatcher) embed(ctx context.Context, text string) ([]float32, error) {
	if vec, ok := m.cache.Get(ctx, text); ok {
		return vec, nil
	}

	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}

	vec, err := m.embedder.Embed(ctx, text)
	if err != nil {
		return nil, err
	}

	m.cache.Put(ctx, text, vec)
	return vec, nil
}
