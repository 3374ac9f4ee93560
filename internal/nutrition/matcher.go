package nutrition

import (
	"context"
	"math"

	"github.com/pageza/macromatch/internal/catalog"
)

// Defaults for the tunable matching constants. The thresholds are
// configuration, not derived values.
const (
	DefaultLexicalThreshold  = 70
	DefaultSemanticThreshold = 0.72
	DefaultTopK              = 50
)

// FoodMatch is a resolved ingredient line with nutrient values already
// scaled to the parsed quantity.
type FoodMatch struct {
	Description string  `json:"description"`
	MatchScore  int     `json:"match_score"`
	Calories    float64 `json:"calories"`
	Protein     float64 `json:"protein"`
	Carbs       float64 `json:"carbs"`
	Fat         float64 `json:"fat"`
}

// Config carries the matching thresholds. Zero values fall back to the
// defaults above.
type Config struct {
	// LexicalThreshold is the minimum 0-100 token-set score for a
	// standalone lexical match.
	LexicalThreshold int
	// TopK bounds how many lexical candidates are handed to the semantic
	// matcher, which bounds embedding calls per ingredient line.
	TopK int
}

// Matcher resolves free-text ingredient lines against a food catalog.
// The semantic matcher is optional; without it resolution is purely
// lexical.
type Matcher struct {
	catalog  *catalog.Catalog
	semantic *SemanticMatcher
	cfg      Config
}

// NewMatcher creates a matcher over the given catalog. semantic may be
// nil.
func NewMatcher(cat *catalog.Catalog, semantic *SemanticMatcher, cfg Config) *Matcher {
	if cfg.LexicalThreshold <= 0 {
		cfg.LexicalThreshold = DefaultLexicalThreshold
	}
	if cfg.TopK <= 0 {
		cfg.TopK = DefaultTopK
	}
	return &Matcher{catalog: cat, semantic: semantic, cfg: cfg}
}

// Match resolves one ingredient line to a scaled FoodMatch. It reports
// false when the line does not parse or no candidate clears a threshold;
// neither case is an error and callers skip such lines. For a fixed
// catalog and fixed embedding responses the result is deterministic.
func (m *Matcher) Match(ctx context.Context, line string) (FoodMatch, bool) {
	parsed, ok := ParseIngredient(line)
	if !ok {
		return FoodMatch{}, false
	}

	ranked := Rank(parsed.Name, m.catalog.Records())
	if len(ranked) == 0 {
		return FoodMatch{}, false
	}

	if m.semantic != nil {
		candidates := make([]catalog.FoodRecord, 0, m.cfg.TopK)
		for i := 0; i < len(ranked) && i < m.cfg.TopK; i++ {
			candidates = append(candidates, ranked[i].Record)
		}

		res := m.semantic.Resolve(ctx, parsed.Name, candidates)
		if res.Outcome == SemanticMatched {
			return scale(res.Record, parsed.QuantityGrams, int(math.Round(res.Score*100))), true
		}
		// Unavailable and NoMatch both fall through to the plain lexical
		// policy below.
	}

	if best := ranked[0]; best.Score >= m.cfg.LexicalThreshold {
		return scale(best.Record, parsed.QuantityGrams, best.Score), true
	}
	return FoodMatch{}, false
}

// scale converts per-100g catalog values to the parsed quantity.
func scale(record catalog.FoodRecord, quantityGrams float64, score int) FoodMatch {
	factor := quantityGrams / 100.0
	return FoodMatch{
		Description: record.Description,
		MatchScore:  score,
		Calories:    record.CaloriesPer100g * factor,
		Protein:     record.ProteinPer100g * factor,
		Carbs:       record.CarbsPer100g * factor,
		Fat:         record.FatPer100g * factor,
	}
}

// Result bundles everything computed for one recipe. It is a value; the
// caller decides whether and how to persist it.
type Result struct {
	Matches    []FoodMatch      `json:"matches"`
	Total      NutritionProfile `json:"total"`
	PerServing NutritionProfile `json:"per_serving"`
}

// Compute matches every ingredient line and aggregates the totals.
// Unparsable and unmatched lines contribute nothing; aggregation always
// completes, returning zero profiles in the worst case.
func (m *Matcher) Compute(ctx context.Context, ingredients []string, servings int) Result {
	matches := make([]FoodMatch, 0, len(ingredients))
	for _, line := range ingredients {
		if match, ok := m.Match(ctx, line); ok {
			matches = append(matches, match)
		}
	}

	total, perServing := Aggregate(matches, servings)
	return Result{Matches: matches, Total: total, PerServing: perServing}
}
