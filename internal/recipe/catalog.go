package recipe

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hammamikhairi/cookbook/internal/domain"
	"github.com/hammamikhairi/cookbook/internal/logger"
)

// Compile-time interface check.
var _ domain.RecipeSource = (*Catalog)(nil)

// Catalog is what the home and detail screens read: bundled recipes first,
// then custom recipes in the order they were saved. Custom recipes are
// re-read from the repository on every call so a save is visible on the
// next listing without any cache invalidation.
type Catalog struct {
	seed   *SeedSource
	custom domain.RecipeRepository
	log    *logger.Logger
}

// NewCatalog merges seed and custom.
func NewCatalog(seed *SeedSource, custom domain.RecipeRepository, log *logger.Logger) *Catalog {
	return &Catalog{seed: seed, custom: custom, log: log}
}

// List returns every recipe.
func (c *Catalog) List(ctx context.Context) ([]domain.RecipeSummary, error) {
	return c.Search(ctx, "")
}

// Get returns a recipe by ID from either source.
func (c *Catalog) Get(ctx context.Context, id string) (*domain.Recipe, error) {
	r, err := c.seed.Get(ctx, id)
	if err == nil {
		return r, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	custom, err := c.custom.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading custom recipes: %w", err)
	}
	for i := range custom {
		if custom[i].ID == id {
			out := custom[i].Clone()
			return &out, nil
		}
	}
	c.log.Debug("recipe not found: %s", id)
	return nil, domain.ErrNotFound
}

// Search returns recipes whose name, category or area contain query.
// An empty query matches everything.
func (c *Catalog) Search(ctx context.Context, query string) ([]domain.RecipeSummary, error) {
	out, err := c.seed.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	custom, err := c.custom.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading custom recipes: %w", err)
	}
	q := strings.ToLower(strings.TrimSpace(query))
	for i := range custom {
		if matches(&custom[i], q) {
			out = append(out, custom[i].Summary())
		}
	}
	c.log.Debug("catalog query %q: %d results", q, len(out))
	return out, nil
}
