package nutrition

import (
	"regexp"
	"sort"
	"strings"

	"github.com/pageza/macromatch/internal/catalog"
)

// RankedRecord is a catalog record with its lexical score against a query.
type RankedRecord struct {
	Record catalog.FoodRecord
	Score  int
}

var punctuation = regexp.MustCompile(`[^\pL\pN\s]+`)

// tokens lower-cases s, strips punctuation and splits it into words.
func tokens(s string) []string {
	return strings.Fields(punctuation.ReplaceAllString(strings.ToLower(s), " "))
}

func tokenSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, t := range tokens(s) {
		set[t] = true
	}
	return set
}

// lexicalScore compares the token sets of two names, ignoring word order
// and punctuation. The score is the share of the smaller set covered by
// the intersection, as an integer percentage, so "chicken breast" still
// scores 100 against "chicken breast, skinless".
func lexicalScore(a, b string) int {
	setA := tokenSet(a)
	setB := tokenSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	overlap := 0
	for t := range setA {
		if setB[t] {
			overlap++
		}
	}

	smaller := len(setA)
	if len(setB) < smaller {
		smaller = len(setB)
	}
	return overlap * 100 / smaller
}

// Rank scores every catalog record against name and returns them ordered
// by score descending. The sort is stable so ties keep catalog order and
// ranking stays deterministic.
func Rank(name string, records []catalog.FoodRecord) []RankedRecord {
	ranked := make([]RankedRecord, 0, len(records))
	for _, r := range records {
		ranked = append(ranked, RankedRecord{Record: r, Score: lexicalScore(name, r.Description)})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}
