package recipe

import (
	"context"
	"errors"
	"testing"

	"github.com/hammamikhairi/cookbook/internal/domain"
	"github.com/hammamikhairi/cookbook/internal/logger"
)

func TestSeedSourceList(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	src, err := NewSeedSource(log)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	ctx := context.Background()

	recipes, err := src.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(recipes) < 2 {
		t.Fatalf("expected at least 2 recipes, got %d", len(recipes))
	}
	if recipes[0].ID != "seed-garlic-shrimp" {
		t.Fatalf("expected file order, first was %s", recipes[0].ID)
	}
	for _, r := range recipes {
		if r.IsCustom {
			t.Fatalf("seed recipe %s marked custom", r.ID)
		}
	}
}

func TestSeedSourceGet(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	src, err := NewSeedSource(log)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	ctx := context.Background()

	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"existing", "seed-baked-salmon", false},
		{"another", "seed-fish-stew", false},
		{"nonexistent", "nope", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := src.Get(ctx, tt.id)
			if tt.wantErr {
				if !errors.Is(err, domain.ErrNotFound) {
					t.Fatalf("expected ErrNotFound, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if r.Name == "" || r.Instructions == "" || len(r.Ingredients) == 0 {
				t.Fatalf("incomplete seed recipe: %+v", r)
			}
		})
	}
}

func TestSeedSourceGetReturnsCopy(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	src, _ := NewSeedSource(log)
	ctx := context.Background()

	r, _ := src.Get(ctx, "seed-garlic-shrimp")
	r.Ingredients[0].Name = "Lobster"

	again, _ := src.Get(ctx, "seed-garlic-shrimp")
	if again.Ingredients[0].Name != "Shrimp" {
		t.Fatalf("seed source leaked mutable state")
	}
}

func TestSeedSourceSearch(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	src, _ := NewSeedSource(log)
	ctx := context.Background()

	tests := []struct {
		query   string
		wantMin int
	}{
		{"salmon", 1},
		{"FRENCH", 1},
		{"seafood", 4},
		{"pizza", 0},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			results, err := src.Search(ctx, tt.query)
			if err != nil {
				t.Fatalf("search: %v", err)
			}
			if len(results) < tt.wantMin {
				t.Fatalf("expected at least %d results for %q, got %d", tt.wantMin, tt.query, len(results))
			}
			if tt.wantMin == 0 && len(results) != 0 {
				t.Fatalf("expected no results for %q, got %d", tt.query, len(results))
			}
		})
	}
}

func TestParseSeedRejectsBadInput(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)

	tests := []struct {
		name string
		data string
	}{
		{"syntax", `[[recipe]] id = `},
		{"missing id", "[[recipe]]\nname = \"x\"\ningredients = [{ name = \"a\", measure = \"\" }]\n"},
		{"no ingredients", "[[recipe]]\nid = \"a\"\nname = \"x\"\n"},
		{"duplicate", "[[recipe]]\nid = \"a\"\ningredients = [{ name = \"a\" }]\n[[recipe]]\nid = \"a\"\ningredients = [{ name = \"a\" }]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseSeed(tt.data, log); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestParseSeedDefaultsCategory(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	src, err := ParseSeed("[[recipe]]\nid = \"a\"\nname = \"Toast\"\ningredients = [{ name = \"Bread\", measure = \"1\" }]\n", log)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	r, _ := src.Get(context.Background(), "a")
	if r.Category != domain.DefaultCategory {
		t.Fatalf("expected default category, got %q", r.Category)
	}
}
