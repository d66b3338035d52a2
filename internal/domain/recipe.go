// Package domain defines the core types and interfaces for the cookbook.
// All other packages depend on domain; domain depends on nothing outside
// the standard library.
package domain

import "strings"

// DefaultCategory is assigned to new recipes whose category is left unset.
const DefaultCategory = "Seafood"

// Recipe is a single cookbook entry. The JSON shape is the on-disk format of
// the custom recipe collection; renaming a tag breaks previously stored data.
type Recipe struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Category     string       `json:"category"`
	Area         string       `json:"area"`
	Instructions string       `json:"instructions"`
	ImageURI     string       `json:"imageUri"`
	Ingredients  []Ingredient `json:"ingredients"`
	IsCustom     bool         `json:"isCustom"`
}

// Ingredient is one line of a recipe's ingredient list.
type Ingredient struct {
	Name    string `json:"name" toml:"name"`
	Measure string `json:"measure" toml:"measure"`
}

// RecipeSummary is a lightweight view of a recipe for listing.
type RecipeSummary struct {
	ID       string
	Name     string
	Category string
	Area     string
	IsCustom bool
}

// NewRecipe builds a recipe with the given ID and ingredient list.
// The list must not be empty; the caller owns every other field.
func NewRecipe(id string, ingredients []Ingredient) (*Recipe, error) {
	if len(ingredients) == 0 {
		return nil, ErrNoIngredients
	}
	out := make([]Ingredient, len(ingredients))
	copy(out, ingredients)
	return &Recipe{
		ID:          id,
		Category:    DefaultCategory,
		Ingredients: out,
	}, nil
}

// Summary returns the listing view of r.
func (r *Recipe) Summary() RecipeSummary {
	return RecipeSummary{
		ID:       r.ID,
		Name:     r.Name,
		Category: r.Category,
		Area:     r.Area,
		IsCustom: r.IsCustom,
	}
}

// Clone returns a deep copy of r.
func (r *Recipe) Clone() Recipe {
	c := *r
	c.Ingredients = make([]Ingredient, len(r.Ingredients))
	copy(c.Ingredients, r.Ingredients)
	return c
}

// Blank reports whether s is empty or whitespace only.
func Blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
