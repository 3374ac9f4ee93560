package nutrition

import (
	"regexp"
	"strconv"
	"strings"
)

// ParsedIngredient is the structured form of a free-text ingredient line.
type ParsedIngredient struct {
	QuantityGrams float64
	Name          string
}

var ingredientPattern = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*([A-Za-z]+)?\s+(.+)$`)

// units are the short tokens accepted between the quantity and the name.
// They are recognized but not converted: all nutrition values are defined
// per 100 units of whatever the catalog was authored in, grams by
// convention.
var units = map[string]bool{
	"g": true, "kg": true, "mg": true,
	"ml": true, "l": true,
	"oz": true, "lb": true, "lbs": true,
	"cup": true, "cups": true,
	"tbsp": true, "tsp": true,
}

// ParseIngredient extracts quantity and name from an ingredient line such
// as "200g chicken breast". Lines without a leading number do not parse;
// the caller skips them silently.
func ParseIngredient(line string) (ParsedIngredient, bool) {
	line = strings.TrimSpace(line)

	m := ingredientPattern.FindStringSubmatch(line)
	if m == nil {
		return ParsedIngredient{}, false
	}

	quantity, err := strconv.ParseFloat(m[1], 64)
	if err != nil || quantity < 0 {
		return ParsedIngredient{}, false
	}

	unit, name := m[2], m[3]
	if unit != "" && !units[strings.ToLower(unit)] {
		// Not a unit token, so it is the first word of the name.
		name = unit + " " + name
	}

	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return ParsedIngredient{}, false
	}

	return ParsedIngredient{QuantityGrams: quantity, Name: name}, true
}
