package service

import (
	"context"

	"github.com/pageza/macromatch/internal/model"
	"github.com/pageza/macromatch/internal/store"
)

// RecipeService handles recipe operations
type RecipeService struct {
	store     store.RecipeStore
	nutrition *NutritionService
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(s store.RecipeStore, n *NutritionService) *RecipeService {
	return &RecipeService{store: s, nutrition: n}
}

// ListRecipes returns all stored recipes.
func (s *RecipeService) ListRecipes(ctx context.Context) ([]model.Recipe, error) {
	return s.store.List(ctx)
}

// GetRecipe returns the recipe stored under title.
func (s *RecipeService) GetRecipe(ctx context.Context, title string) (*model.Recipe, error) {
	return s.store.Get(ctx, title)
}

// CreateRecipe computes nutrition for the recipe and stores it.
func (s *RecipeService) CreateRecipe(ctx context.Context, recipe *model.Recipe) error {
	s.nutrition.Apply(ctx, recipe)
	return s.store.Add(ctx, recipe)
}

// UpdateRecipe replaces the recipe stored under title, recomputing its
// nutrition from the updated ingredient list.
func (s *RecipeService) UpdateRecipe(ctx context.Context, title string, recipe *model.Recipe) error {
	s.nutrition.Apply(ctx, recipe)
	return s.store.Update(ctx, title, recipe)
}

// DeleteRecipe removes the recipe stored under title.
func (s *RecipeService) DeleteRecipe(ctx context.Context, title string) error {
	return s.store.Delete(ctx, title)
}

// SearchRecipes returns recipes matching the query.
func (s *RecipeService) SearchRecipes(ctx context.Context, query string) ([]model.Recipe, error) {
	return s.store.Search(ctx, query)
}

// RecomputeNutrition re-runs ingredient matching for a stored recipe and
// persists the fresh result.
func (s *RecipeService) RecomputeNutrition(ctx context.Context, title string) (*model.Recipe, error) {
	recipe, err := s.store.Get(ctx, title)
	if err != nil {
		return nil, err
	}

	s.nutrition.Apply(ctx, recipe)
	if err := s.store.Update(ctx, title, recipe); err != nil {
		return nil, err
	}
	return recipe, nil
}
