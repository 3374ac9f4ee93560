package store

import (
	"context"
	"errors"

	"github.com/pageza/macromatch/internal/model"
)

var (
	// ErrNotFound is returned when no recipe exists under the given title.
	ErrNotFound = errors.New("recipe not found")
	// ErrDuplicateTitle is returned when an add or rename collides with an
	// existing recipe. Titles compare case-insensitively.
	ErrDuplicateTitle = errors.New("a recipe with this title already exists")
)

// RecipeStore persists recipes keyed by title. Implementations must treat
// titles case-insensitively for lookups and uniqueness.
type RecipeStore interface {
	List(ctx context.Context) ([]model.Recipe, error)
	Get(ctx context.Context, title string) (*model.Recipe, error)
	Add(ctx context.Context, recipe *model.Recipe) error
	Update(ctx context.Context, title string, recipe *model.Recipe) error
	Delete(ctx context.Context, title string) error
	Search(ctx context.Context, query string) ([]model.Recipe, error)
}
