package recipe

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hammamikhairi/cookbook/internal/domain"
	"github.com/hammamikhairi/cookbook/internal/logger"
)

// Compile-time interface check.
var _ domain.RecipeRepository = (*CustomRepository)(nil)

// CustomRepository is the single owner of the custom recipe collection. The
// whole collection lives under domain.CustomRecipesKey as one JSON array,
// newest last.
type CustomRepository struct {
	store domain.KVStore
	key   string
	log   *logger.Logger
}

// NewCustomRepository wraps store.
func NewCustomRepository(store domain.KVStore, log *logger.Logger) *CustomRepository {
	return &CustomRepository{store: store, key: domain.CustomRecipesKey, log: log}
}

// LoadAll returns the stored collection. A key that was never written reads
// as an empty collection.
func (r *CustomRepository) LoadAll(ctx context.Context) ([]domain.Recipe, error) {
	raw, ok, err := r.store.GetItem(ctx, r.key)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", r.key, err)
	}
	if !ok {
		return []domain.Recipe{}, nil
	}

	var recipes []domain.Recipe
	if err := json.Unmarshal([]byte(raw), &recipes); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", r.key, err)
	}
	if recipes == nil {
		recipes = []domain.Recipe{}
	}
	r.log.Debug("loaded %d custom recipes", len(recipes))
	return recipes, nil
}

// SaveAll replaces the stored collection with recipes.
func (r *CustomRepository) SaveAll(ctx context.Context, recipes []domain.Recipe) error {
	if recipes == nil {
		recipes = []domain.Recipe{}
	}
	data, err := json.Marshal(recipes)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", r.key, err)
	}
	if err := r.store.SetItem(ctx, r.key, string(data)); err != nil {
		return fmt.Errorf("writing %s: %w", r.key, err)
	}
	r.log.Debug("saved %d custom recipes", len(recipes))
	return nil
}
