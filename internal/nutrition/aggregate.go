package nutrition

// NutritionProfile holds macro totals in kcal and grams.
type NutritionProfile struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// Add returns the field-wise sum of p and other.
func (p NutritionProfile) Add(other NutritionProfile) NutritionProfile {
	return NutritionProfile{
		Calories: p.Calories + other.Calories,
		Protein:  p.Protein + other.Protein,
		Carbs:    p.Carbs + other.Carbs,
		Fat:      p.Fat + other.Fat,
	}
}

// PerServing divides the profile by servings, flooring the divisor at 1.
func (p NutritionProfile) PerServing(servings int) NutritionProfile {
	if servings < 1 {
		servings = 1
	}
	n := float64(servings)
	return NutritionProfile{
		Calories: p.Calories / n,
		Protein:  p.Protein / n,
		Carbs:    p.Carbs / n,
		Fat:      p.Fat / n,
	}
}

// Aggregate sums scaled matches into a recipe total and derives the
// per-serving profile. It is a pure function; match order does not affect
// the result beyond floating point rounding.
func Aggregate(matches []FoodMatch, servings int) (total, perServing NutritionProfile) {
	for _, m := range matches {
		total = total.Add(NutritionProfile{
			Calories: m.Calories,
			Protein:  m.Protein,
			Carbs:    m.Carbs,
			Fat:      m.Fat,
		})
	}
	return total, total.PerServing(servings)
}
