package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pageza/macromatch/internal/model"
)

// FileStore keeps recipes in a single JSON file. It is the zero-setup
// backend for development and small deployments; every write rewrites the
// whole file.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a store backed by the JSON file at path. The file
// is created lazily on first write.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) load() ([]model.Recipe, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []model.Recipe{}, nil
		}
		return nil, fmt.Errorf("failed to read recipe file: %w", err)
	}

	var recipes []model.Recipe
	if err := json.Unmarshal(data, &recipes); err != nil {
		return nil, fmt.Errorf("failed to parse recipe file: %w", err)
	}
	return recipes, nil
}

func (s *FileStore) save(recipes []model.Recipe) error {
	data, err := json.MarshalIndent(recipes, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal recipes: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write recipe file: %w", err)
	}
	return nil
}

func findByTitle(recipes []model.Recipe, title string) int {
	for i, r := range recipes {
		if strings.EqualFold(r.Title, title) {
			return i
		}
	}
	return -1
}

// List returns all stored recipes.
func (s *FileStore) List(ctx context.Context) ([]model.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Get returns the recipe with the given title.
func (s *FileStore) Get(ctx context.Context, title string) (*model.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	recipes, err := s.load()
	if err != nil {
		return nil, err
	}

	i := findByTitle(recipes, title)
	if i < 0 {
		return nil, ErrNotFound
	}
	recipe := recipes[i]
	return &recipe, nil
}

// Add stores a new recipe, rejecting duplicate titles.
func (s *FileStore) Add(ctx context.Context, recipe *model.Recipe) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	recipes, err := s.load()
	if err != nil {
		return err
	}

	if findByTitle(recipes, recipe.Title) >= 0 {
		return ErrDuplicateTitle
	}

	if recipe.ID == uuid.Nil {
		recipe.ID = uuid.New()
	}
	now := time.Now()
	recipe.CreatedAt = now
	recipe.UpdatedAt = now

	recipes = append(recipes, *recipe)
	return s.save(recipes)
}

// Update replaces the recipe stored under title. Renames are allowed as
// long as the new title does not collide with another recipe.
func (s *FileStore) Update(ctx context.Context, title string, recipe *model.Recipe) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	recipes, err := s.load()
	if err != nil {
		return err
	}

	i := findByTitle(recipes, title)
	if i < 0 {
		return ErrNotFound
	}

	if !strings.EqualFold(recipe.Title, title) {
		if j := findByTitle(recipes, recipe.Title); j >= 0 && j != i {
			return ErrDuplicateTitle
		}
	}

	recipe.ID = recipes[i].ID
	recipe.CreatedAt = recipes[i].CreatedAt
	recipe.UpdatedAt = time.Now()

	recipes[i] = *recipe
	return s.save(recipes)
}

// Delete removes the recipe stored under title.
func (s *FileStore) Delete(ctx context.Context, title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	recipes, err := s.load()
	if err != nil {
		return err
	}

	i := findByTitle(recipes, title)
	if i < 0 {
		return ErrNotFound
	}

	recipes = append(recipes[:i], recipes[i+1:]...)
	return s.save(recipes)
}

// Search returns recipes whose title or ingredients contain the query,
// case-insensitively.
func (s *FileStore) Search(ctx context.Context, query string) ([]model.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	recipes, err := s.load()
	if err != nil {
		return nil, err
	}
	if query == "" {
		return recipes, nil
	}

	query = strings.ToLower(query)
	matched := make([]model.Recipe, 0, len(recipes))
	for _, r := range recipes {
		if strings.Contains(strings.ToLower(r.Title), query) {
			matched = append(matched, r)
			continue
		}
		for _, ing := range r.Ingredients {
			if strings.Contains(strings.ToLower(ing), query) {
				matched = append(matched, r)
				break
			}
		}
	}
	return matched, nil
}

var _ RecipeStore = (*FileStore)(nil)
