// Package form implements the add-recipe form: the mutable draft the user
// edits and the controller that validates and persists it.
package form

import (
	"context"

	"github.com/hammamikhairi/cookbook/internal/domain"
	"github.com/hammamikhairi/cookbook/internal/logger"
)

// Scalar field keys accepted by Draft.SetField.
const (
	FieldName         = "name"
	FieldCategory     = "category"
	FieldArea         = "area"
	FieldInstructions = "instructions"
	FieldImageURI     = "imageUri"
)

// Ingredient property keys accepted by Draft.SetIngredient.
const (
	IngredientName    = "name"
	IngredientMeasure = "measure"
)

// Picker configuration for every SelectImage call.
var imageOptions = domain.PickOptions{
	MediaType:     domain.MediaPhoto,
	MaxWidth:      800,
	MaxHeight:     800,
	IncludeBase64: false,
}

// DraftOption configures a new draft.
type DraftOption func(*Draft)

// WithDefaultCategory overrides domain.DefaultCategory for this draft.
func WithDefaultCategory(category string) DraftOption {
	return func(d *Draft) {
		if category != "" {
			d.recipe.Category = category
		}
	}
}

// Draft is the in-memory recipe being edited. It always holds at least one
// ingredient slot. Not safe for concurrent use.
type Draft struct {
	recipe domain.Recipe
	picker domain.ImagePicker
	log    *logger.Logger
}

// NewDraft creates an empty custom recipe with a fresh ID and a single
// blank ingredient slot.
func NewDraft(picker domain.ImagePicker, log *logger.Logger, opts ...DraftOption) *Draft {
	// One blank slot satisfies NewRecipe's only precondition.
	r, _ := domain.NewRecipe(generateID(), []domain.Ingredient{{}})
	r.IsCustom = true

	d := &Draft{recipe: *r, picker: picker, log: log}
	for _, opt := range opts {
		opt(d)
	}
	log.Debug("new draft %s", d.recipe.ID)
	return d
}

// Recipe returns a snapshot of the draft.
func (d *Draft) Recipe() domain.Recipe {
	return d.recipe.Clone()
}

// SetField replaces one scalar field. Unknown keys are ignored.
func (d *Draft) SetField(key, value string) {
	switch key {
	case FieldName:
		d.recipe.Name = value
	case FieldCategory:
		d.recipe.Category = value
	case FieldArea:
		d.recipe.Area = value
	case FieldInstructions:
		d.recipe.Instructions = value
	case FieldImageURI:
		d.recipe.ImageURI = value
	default:
		d.log.Debug("ignoring unknown field %q", key)
	}
}

// SetIngredient replaces one property of the ingredient at index. Callers
// only pass indexes they obtained from the current list; anything else is
// ignored.
func (d *Draft) SetIngredient(index int, key, value string) {
	if index < 0 || index >= len(d.recipe.Ingredients) {
		d.log.Debug("ingredient index %d out of range (len=%d)", index, len(d.recipe.Ingredients))
		return
	}
	switch key {
	case IngredientName:
		d.recipe.Ingredients[index].Name = value
	case IngredientMeasure:
		d.recipe.Ingredients[index].Measure = value
	default:
		d.log.Debug("ignoring unknown ingredient property %q", key)
	}
}

// AddIngredient appends a blank ingredient slot.
func (d *Draft) AddIngredient() {
	d.recipe.Ingredients = append(d.recipe.Ingredients, domain.Ingredient{})
}

// RemoveIngredient drops the slot at index unless it is the last one left.
func (d *Draft) RemoveIngredient(index int) {
	n := len(d.recipe.Ingredients)
	if n <= 1 || index < 0 || index >= n {
		return
	}
	out := make([]domain.Ingredient, 0, n-1)
	out = append(out, d.recipe.Ingredients[:index]...)
	out = append(out, d.recipe.Ingredients[index+1:]...)
	d.recipe.Ingredients = out
}

// IngredientCount returns the number of ingredient slots.
func (d *Draft) IngredientCount() int {
	return len(d.recipe.Ingredients)
}

// SelectImage asks the picker for a photo and stores the first asset's URI.
// Cancellation and picker errors leave the draft unchanged; errors are
// logged and never shown to the user.
func (d *Draft) SelectImage(ctx context.Context) domain.PickStatus {
	res := d.picker.Pick(ctx, imageOptions)
	switch res.Status {
	case domain.PickCancelled:
		d.log.Debug("image selection cancelled")
	case domain.PickErrored:
		d.log.Error("image picker: %s", res.Message)
	case domain.PickSelected:
		if len(res.Assets) == 0 {
			d.log.Error("image picker: selection returned no assets")
			return domain.PickErrored
		}
		d.recipe.ImageURI = res.Assets[0].URI
		d.log.Debug("image selected: %s", d.recipe.ImageURI)
	}
	return res.Status
}
