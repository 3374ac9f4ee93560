package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/macromatch/internal/model"
	"github.com/pageza/macromatch/internal/service"
	"github.com/pageza/macromatch/internal/store"
)

// RecipeHandler handles recipe CRUD and nutrition requests
type RecipeHandler struct {
	recipes *service.RecipeService
}

// NewRecipeHandler creates a new RecipeHandler instance
func NewRecipeHandler(recipes *service.RecipeService) *RecipeHandler {
	return &RecipeHandler{recipes: recipes}
}

// RegisterRoutes registers the recipe routes
func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.POST("", h.CreateRecipe)
		recipes.GET("/:title", h.GetRecipe)
		recipes.PUT("/:title", h.UpdateRecipe)
		recipes.DELETE("/:title", h.DeleteRecipe)
		recipes.POST("/:title/nutrition", h.RecomputeNutrition)
	}
}

// RecipeRequest is the request body for creating and updating recipes
type RecipeRequest struct {
	Title       string   `json:"title" binding:"required"`
	Yield       int      `json:"yield"`
	Ingredients []string `json:"ingredients"`
}

func (r *RecipeRequest) toModel() *model.Recipe {
	return &model.Recipe{
		Title:       r.Title,
		Yield:       r.Yield,
		Ingredients: model.JSONBStringArray(r.Ingredients),
	}
}

// ListRecipes returns all recipes, optionally filtered by ?q=
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	var (
		recipes []model.Recipe
		err     error
	)

	if query := c.Query("q"); query != "" {
		recipes, err = h.recipes.SearchRecipes(c.Request.Context(), query)
	} else {
		recipes, err = h.recipes.ListRecipes(c.Request.Context())
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recipes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"recipes":     recipes,
		"total_count": len(recipes),
	})
}

// GetRecipe returns a single recipe by title
func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	recipe, err := h.recipes.GetRecipe(c.Request.Context(), c.Param("title"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recipe"})
		return
	}

	c.JSON(http.StatusOK, recipe)
}

// CreateRecipe stores a new recipe with computed nutrition
func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var req RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe := req.toModel()
	if err := h.recipes.CreateRecipe(c.Request.Context(), recipe); err != nil {
		if errors.Is(err, store.ErrDuplicateTitle) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save recipe"})
		return
	}

	c.JSON(http.StatusCreated, recipe)
}

// UpdateRecipe replaces the recipe stored under :title
func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	var req RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe := req.toModel()
	err := h.recipes.UpdateRecipe(c.Request.Context(), c.Param("title"), recipe)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		case errors.Is(err, store.ErrDuplicateTitle):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update recipe"})
		}
		return
	}

	c.JSON(http.StatusOK, recipe)
}

// DeleteRecipe removes the recipe stored under :title
func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	err := h.recipes.DeleteRecipe(c.Request.Context(), c.Param("title"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete recipe"})
		return
	}

	c.Status(http.StatusNoContent)
}

// RecomputeNutrition re-runs ingredient matching for a stored recipe
func (h *RecipeHandler) RecomputeNutrition(c *gin.Context) {
	recipe, err := h.recipes.RecomputeNutrition(c.Request.Context(), c.Param("title"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to recompute nutrition"})
		return
	}

	c.JSON(http.StatusOK, recipe)
}
