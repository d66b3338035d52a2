// Package recipe provides recipe sources: the bundled seed catalog, the
// user's custom recipes, and the merged view the screens read from.
package recipe

import (
	"context"
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/hammamikhairi/cookbook/internal/domain"
	"github.com/hammamikhairi/cookbook/internal/logger"
)

// Compile-time interface check.
var _ domain.RecipeSource = (*SeedSource)(nil)

//go:embed seed.toml
var seedTOML string

// seedFile is the on-disk shape of seed.toml.
type seedFile struct {
	Recipes []seedRecipe `toml:"recipe"`
}

type seedRecipe struct {
	ID           string              `toml:"id"`
	Name         string              `toml:"name"`
	Category     string              `toml:"category"`
	Area         string              `toml:"area"`
	Instructions string              `toml:"instructions"`
	Image        string              `toml:"image"`
	Ingredients  []domain.Ingredient `toml:"ingredients"`
}

// SeedSource holds the bundled recipes in file order. Safe for concurrent reads.
type SeedSource struct {
	mu      sync.RWMutex
	order   []string
	recipes map[string]*domain.Recipe
	log     *logger.Logger
}

// NewSeedSource creates a source preloaded with the embedded seed catalog.
func NewSeedSource(log *logger.Logger) (*SeedSource, error) {
	return ParseSeed(seedTOML, log)
}

// ParseSeed builds a source from TOML text in the seed.toml format.
func ParseSeed(data string, log *logger.Logger) (*SeedSource, error) {
	var f seedFile
	if _, err := toml.Decode(data, &f); err != nil {
		return nil, fmt.Errorf("decoding seed catalog: %w", err)
	}

	src := &SeedSource{
		recipes: make(map[string]*domain.Recipe, len(f.Recipes)),
		log:     log,
	}
	for i, sr := range f.Recipes {
		if sr.ID == "" {
			return nil, fmt.Errorf("seed recipe %d: missing id", i)
		}
		if _, dup := src.recipes[sr.ID]; dup {
			return nil, fmt.Errorf("seed recipe %q: %w", sr.ID, domain.ErrAlreadyExists)
		}
		r, err := domain.NewRecipe(sr.ID, sr.Ingredients)
		if err != nil {
			return nil, fmt.Errorf("seed recipe %q: %w", sr.ID, err)
		}
		r.Name = sr.Name
		r.Area = sr.Area
		r.Instructions = strings.TrimSpace(sr.Instructions)
		r.ImageURI = sr.Image
		if sr.Category != "" {
			r.Category = sr.Category
		}
		src.recipes[r.ID] = r
		src.order = append(src.order, r.ID)
	}
	log.Debug("seeded %d recipes", len(src.order))
	return src, nil
}

// List returns summaries of all seed recipes in catalog order.
func (s *SeedSource) List(ctx context.Context) ([]domain.RecipeSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.RecipeSummary, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.recipes[id].Summary())
	}
	return out, nil
}

// Get returns a copy of the seed recipe with the given ID.
func (s *SeedSource) Get(ctx context.Context, id string) (*domain.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.recipes[id]
	if !ok {
		s.log.Debug("seed recipe not found: %s", id)
		return nil, domain.ErrNotFound
	}
	c := r.Clone()
	return &c, nil
}

// Search returns seed recipes whose name, category or area contain query.
func (s *SeedSource) Search(ctx context.Context, query string) ([]domain.RecipeSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q := strings.ToLower(strings.TrimSpace(query))
	var out []domain.RecipeSummary
	for _, id := range s.order {
		r := s.recipes[id]
		if matches(r, q) {
			out = append(out, r.Summary())
		}
	}
	return out, nil
}

func matches(r *domain.Recipe, query string) bool {
	if query == "" {
		return true
	}
	for _, field := range []string{r.Name, r.Category, r.Area} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}
