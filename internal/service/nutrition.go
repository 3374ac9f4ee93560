package service

import (
	"context"

	"github.com/pageza/macromatch/internal/model"
	"github.com/pageza/macromatch/internal/nutrition"
)

// NutritionService computes nutrition for recipes through the ingredient
// matcher. It never fails: in the worst case (empty catalog, nothing
// parses) a recipe gets zero-valued profiles.
type NutritionService struct {
	matcher *nutrition.Matcher
}

// NewNutritionService creates a new NutritionService instance
func NewNutritionService(matcher *nutrition.Matcher) *NutritionService {
	return &NutritionService{matcher: matcher}
}

// Compute matches all ingredient lines and aggregates totals for the
// given ingredient list and yield.
func (s *NutritionService) Compute(ctx context.Context, ingredients []string, yield int) nutrition.Result {
	return s.matcher.Compute(ctx, ingredients, yield)
}

// Apply recomputes the recipe's nutrition from its current ingredient
// list and stores the result on the recipe value, replacing any previous
// computation. The search embedding is refreshed alongside.
func (s *NutritionService) Apply(ctx context.Context, recipe *model.Recipe) {
	result := s.Compute(ctx, recipe.Ingredients, recipe.Yield)

	recipe.IngredientMatches = model.FoodMatchArray(result.Matches)
	recipe.TotalNutrition = result.Total
	recipe.PerServingNutrition = result.PerServing
	recipe.Embedding = model.SearchEmbedding(recipe.Title)
}
