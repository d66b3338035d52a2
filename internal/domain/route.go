package domain

// Route names a screen the navigation shell can show.
type Route int

const (
	RouteUnknown Route = iota
	RouteHome
	RouteRecipeDetail
	RouteAddRecipe
	RouteBack // pop to whatever was shown before
)

// String returns the route name used by the navigation shell.
func (r Route) String() string {
	switch r {
	case RouteHome:
		return "Home"
	case RouteRecipeDetail:
		return "RecipeDetail"
	case RouteAddRecipe:
		return "AddRecipe"
	case RouteBack:
		return "Back"
	default:
		return "Unknown"
	}
}
