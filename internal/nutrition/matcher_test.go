package nutrition

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/macromatch/internal/catalog"
)

func testCatalog() *catalog.Catalog {
	cat, err := catalog.Load(strings.NewReader(`description,calories,proteinInGrams,carbohydratesInGrams,fatInGrams
olive oil,884,0,0,100
chicken breast,165,31,0,3.6
broccoli,34,2.8,6.6,0.4
honey,304,0.3,82.4,0
rolled oats,389,16.9,66.3,6.9
`))
	if err != nil {
		panic(err)
	}
	return cat
}

func TestMatcherLexicalOnly(t *testing.T) {
	ctx := context.Background()
	m := NewMatcher(testCatalog(), nil, Config{})

	t.Run("scales nutrients to the parsed quantity", func(t *testing.T) {
		match, ok := m.Match(ctx, "30g olive oil")
		require.True(t, ok)
		assert.Equal(t, "olive oil", match.Description)
		assert.Equal(t, 100, match.MatchScore)
		assert.InDelta(t, 265.2, match.Calories, 0.001)
		assert.InDelta(t, 30.0, match.Fat, 0.001)
		assert.InDelta(t, 0.0, match.Protein, 0.001)
		assert.InDelta(t, 0.0, match.Carbs, 0.001)
	})

	t.Run("unparsable line does not match", func(t *testing.T) {
		_, ok := m.Match(ctx, "a pinch of salt")
		assert.False(t, ok)
	})

	t.Run("below-threshold candidates do not match", func(t *testing.T) {
		_, ok := m.Match(ctx, "100g dragon fruit")
		assert.False(t, ok)
	})

	t.Run("zero quantity matches with zero nutrients", func(t *testing.T) {
		match, ok := m.Match(ctx, "0g honey")
		require.True(t, ok)
		assert.Equal(t, 0.0, match.Calories)
		assert.Equal(t, 0.0, match.Carbs)
	})
}

func TestMatcherEmptyCatalog(t *testing.T) {
	m := NewMatcher(catalog.Empty(), nil, Config{})

	res := m.Compute(context.Background(), []string{"30g olive oil", "200g chicken breast"}, 2)
	assert.Empty(t, res.Matches)
	assert.Equal(t, NutritionProfile{}, res.Total)
	assert.Equal(t, NutritionProfile{}, res.PerServing)
}

func TestMatcherSemanticOverride(t *testing.T) {
	ctx := context.Background()

	// "evoo" shares no tokens with any record, so only the semantic layer
	// can resolve it.
	embedder := newFakeEmbedder(map[string][]float32{
		"evoo":           {1, 0, 0},
		"olive oil":      {0.97, 0.03, 0},
		"chicken breast": {0, 1, 0},
		"broccoli":       {0, 0.9, 0.1},
		"honey":          {0, 0.5, 0.5},
		"rolled oats":    {0.1, 0.1, 0.8},
	})
	semantic := NewSemanticMatcher(embedder, NewMemoryCache(), 0.72, time.Second)
	m := NewMatcher(testCatalog(), semantic, Config{})

	match, ok := m.Match(ctx, "50g evoo")
	require.True(t, ok)
	assert.Equal(t, "olive oil", match.Description)
	assert.InDelta(t, 442.0, match.Calories, 0.001)
	assert.GreaterOrEqual(t, match.MatchScore, 72)
}

func TestMatcherFallsBackWhenProviderFails(t *testing.T) {
	ctx := context.Background()
	lines := []string{
		"30g olive oil",
		"200g chicken breast",
		"500g broccoli",
		"not an ingredient",
	}

	lexicalOnly := NewMatcher(testCatalog(), nil, Config{})
	want := lexicalOnly.Compute(ctx, lines, 2)

	failing := newFakeEmbedder(nil)
	failing.err = fmt.Errorf("provider down")
	semantic := NewSemanticMatcher(failing, NewMemoryCache(), 0.72, time.Second)
	degraded := NewMatcher(testCatalog(), semantic, Config{})
	got := degraded.Compute(ctx, lines, 2)

	assert.Equal(t, want, got, "a failing provider must behave exactly like lexical-only matching")
}

func TestMatcherCompute(t *testing.T) {
	ctx := context.Background()
	m := NewMatcher(testCatalog(), nil, Config{})

	res := m.Compute(ctx, []string{"30g olive oil", "100g honey", "nonsense line"}, 2)
	require.Len(t, res.Matches, 2)

	assert.InDelta(t, 265.2+304.0, res.Total.Calories, 0.001)
	assert.InDelta(t, res.Total.Calories/2, res.PerServing.Calories, 0.001)
	assert.InDelta(t, res.Total.Fat/2, res.PerServing.Fat, 0.001)
}

func TestMatcherTopKBoundsCandidates(t *testing.T) {
	ctx := context.Background()
	embedder := newFakeEmbedder(map[string][]float32{
		"olive oils": {1, 0, 0},
		"olive oil":  {0.97, 0.03, 0},
	})
	semantic := NewSemanticMatcher(embedder, NewMemoryCache(), 0.72, time.Second)
	m := NewMatcher(testCatalog(), semantic, Config{TopK: 1})

	// Only the top lexical candidate reaches the embedder.
	match, ok := m.Match(ctx, "30g olive oils")
	require.True(t, ok)
	assert.Equal(t, "olive oil", match.Description)
	assert.Equal(t, 2, len(embedder.calls), "one query plus one candidate")
}
