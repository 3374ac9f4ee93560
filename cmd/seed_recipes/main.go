package main

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/pageza/macromatch/config"
	"github.com/pageza/macromatch/internal/catalog"
	"github.com/pageza/macromatch/internal/embedding"
	"github.com/pageza/macromatch/internal/model"
	"github.com/pageza/macromatch/internal/nutrition"
	"github.com/pageza/macromatch/internal/service"
	"github.com/pageza/macromatch/internal/store"
)

// seedRecipes are the sample recipes inserted into an empty store.
var seedRecipes = []model.Recipe{
	{
		Title: "Chicken Stir-Fry",
		Yield: 2,
		Ingredients: model.JSONBStringArray{
			"30g olive oil",
			"200g chicken breast",
			"500g broccoli florets",
			"250g red bell pepper",
			"60g soy sauce",
			"10g garlic",
			"5g ginger",
		},
	},
	{
		Title: "Veggie Omelette",
		Yield: 1,
		Ingredients: model.JSONBStringArray{
			"100g large eggs",
			"40g diced onion",
			"50g diced tomato",
			"20g spinach leaves",
			"15g olive oil",
			"150g small corn tortillas",
			"3g salt and pepper (to taste)",
		},
	},
	{
		Title: "Overnight Oats",
		Yield: 4,
		Ingredients: model.JSONBStringArray{
			"160g rolled oats",
			"1000g almond milk",
			"70g chia seeds",
			"60g honey",
			"300g blueberries",
		},
	},
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	cat := catalog.LoadFile(cfg.CatalogPath)

	var semantic *nutrition.SemanticMatcher
	if embedder, err := embedding.NewClient(); err == nil {
		semantic = nutrition.NewSemanticMatcher(embedder, nutrition.NewMemoryCache(), cfg.SemanticThreshold, 10*time.Second)
	} else {
		log.Printf("Seeding with lexical matching only: %v", err)
	}

	matcher := nutrition.NewMatcher(cat, semantic, nutrition.Config{
		LexicalThreshold: cfg.LexicalThreshold,
		TopK:             cfg.TopK,
	})

	recipeStore := store.NewFileStore(cfg.RecipesPath)
	recipes := service.NewRecipeService(recipeStore, service.NewNutritionService(matcher))

	for i := range seedRecipes {
		recipe := seedRecipes[i]
		err := recipes.CreateRecipe(ctx, &recipe)
		if errors.Is(err, store.ErrDuplicateTitle) {
			log.Printf("Skipping %q: already seeded", recipe.Title)
			continue
		}
		if err != nil {
			log.Fatalf("Failed to seed %q: %v", recipe.Title, err)
		}
		log.Printf("Seeded %q: %.0f kcal total, %.0f kcal per serving",
			recipe.Title, recipe.TotalNutrition.Calories, recipe.PerServingNutrition.Calories)
	}
}
