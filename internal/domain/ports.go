package domain

import "context"

// CustomRecipesKey is the store key holding every user-authored recipe as a
// single serialized array.
const CustomRecipesKey = "customRecipes"

// KVStore is the device-local key-value facility. Values are opaque text
// blobs. GetItem reports ok=false when the key has never been written.
type KVStore interface {
	GetItem(ctx context.Context, key string) (value string, ok bool, err error)
	SetItem(ctx context.Context, key, value string) error
}

// RecipeRepository owns the custom recipe collection. Callers never see the
// serialized blob.
type RecipeRepository interface {
	LoadAll(ctx context.Context) ([]Recipe, error)
	SaveAll(ctx context.Context, recipes []Recipe) error
}

// RecipeSource provides recipes for the home and detail screens.
type RecipeSource interface {
	List(ctx context.Context) ([]RecipeSummary, error)
	Get(ctx context.Context, id string) (*Recipe, error)
	Search(ctx context.Context, query string) ([]RecipeSummary, error)
}

// ImagePicker lets the user choose a photo. Pick blocks until the chooser
// returns control.
type ImagePicker interface {
	Pick(ctx context.Context, opts PickOptions) PickResult
}

// Alert titles with a fixed meaning. Alerters may style them differently.
const (
	AlertTitleError   = "Error"
	AlertTitleSuccess = "Success"
)

// Alerter shows a blocking message to the user.
type Alerter interface {
	Alert(ctx context.Context, title, message string) error
}

// Navigator moves between screens. param is route specific (recipe ID for
// RouteRecipeDetail) and empty otherwise.
type Navigator interface {
	Navigate(ctx context.Context, route Route, param string) error
}
