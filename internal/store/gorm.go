package store

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/macromatch/internal/model"
)

// GormStore persists recipes in Postgres (or SQLite in tests) through
// gorm. On Postgres, search orders by pgvector distance over the recipe
// embedding; other dialects fall back to LIKE matching.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore wraps an open gorm connection.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// List returns all stored recipes.
func (s *GormStore) List(ctx context.Context) ([]model.Recipe, error) {
	var recipes []model.Recipe
	if err := s.db.WithContext(ctx).Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// Get returns the recipe with the given title.
func (s *GormStore) Get(ctx context.Context, title string) (*model.Recipe, error) {
	var recipe model.Recipe
	err := s.db.WithContext(ctx).First(&recipe, "LOWER(title) = LOWER(?)", title).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// Add stores a new recipe, rejecting duplicate titles.
func (s *GormStore) Add(ctx context.Context, recipe *model.Recipe) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.Recipe{}).
		Where("LOWER(title) = LOWER(?)", recipe.Title).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicateTitle
	}

	return s.db.WithContext(ctx).Create(recipe).Error
}

// Update replaces the recipe stored under title.
func (s *GormStore) Update(ctx context.Context, title string, recipe *model.Recipe) error {
	existing, err := s.Get(ctx, title)
	if err != nil {
		return err
	}

	if !strings.EqualFold(recipe.Title, title) {
		var count int64
		if err := s.db.WithContext(ctx).Model(&model.Recipe{}).
			Where("LOWER(title) = LOWER(?) AND id <> ?", recipe.Title, existing.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateTitle
		}
	}

	recipe.ID = existing.ID
	recipe.CreatedAt = existing.CreatedAt
	return s.db.WithContext(ctx).Save(recipe).Error
}

// Delete removes the recipe stored under title.
func (s *GormStore) Delete(ctx context.Context, title string) error {
	existing, err := s.Get(ctx, title)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(&model.Recipe{}, "id = ?", existing.ID).Error
}

// Search returns recipes ranked against the query. On Postgres the recipe
// embeddings order the result by vector distance; elsewhere it is a plain
// LIKE filter over title and ingredients.
func (s *GormStore) Search(ctx context.Context, query string) ([]model.Recipe, error) {
	if query == "" {
		return s.List(ctx)
	}

	db := s.db.WithContext(ctx)
	var recipes []model.Recipe

	if s.db.Dialector.Name() == "postgres" {
		vec := model.SearchEmbedding(query)
		err := db.Clauses(clause.OrderBy{
			Expression: clause.Expr{SQL: "embedding <-> ?", Vars: []interface{}{vec}},
		}).Find(&recipes).Error
		return recipes, err
	}

	like := "%" + strings.ToLower(query) + "%"
	err := db.Where("LOWER(title) LIKE ? OR LOWER(ingredients) LIKE ?", like, like).
		Find(&recipes).Error
	return recipes, err
}

var _ RecipeStore = (*GormStore)(nil)
