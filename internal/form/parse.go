package form

import (
	"regexp"
	"strings"

	"github.com/hammamikhairi/cookbook/internal/domain"
)

// ingredientRule splits one line of user input into name and measure.
type ingredientRule struct {
	regex   *regexp.Regexp
	name    int // submatch index of the name
	measure int // submatch index of the measure
}

// ingredientRules are tried in order; the first match wins.
var ingredientRules = []ingredientRule{
	// "Water=1L", "Olive oil = 2 tbsp", "7 Up =". The last "=" separates,
	// so names may contain "=" and measures may not.
	{regexp.MustCompile(`^(.*?)\s*=\s*([^=]*)$`), 1, 2},
	// "Water: 1L"
	{regexp.MustCompile(`^([^:]+?)\s*:\s*(.*)$`), 1, 2},
	// "1L Water", "2 tbsp olive oil", "1/2 lemon"
	{regexp.MustCompile(`(?i)^(\d[\d./,]*\s*(?:kg|g|mg|ml|cl|dl|l|tbsp|tsp|cups?|cloves?|pinch(?:es)?|pieces?|slices?)?)\s+(.+)$`), 2, 1},
}

// ParseIngredient turns a line such as "Water=1L" or "2 tbsp olive oil"
// into an ingredient. Anything that matches no rule is taken as a name with
// no measure. Blank input gives a blank ingredient.
func ParseIngredient(input string) domain.Ingredient {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return domain.Ingredient{}
	}
	for _, rule := range ingredientRules {
		m := rule.regex.FindStringSubmatch(trimmed)
		if m == nil {
			continue
		}
		return domain.Ingredient{
			Name:    strings.TrimSpace(m[rule.name]),
			Measure: strings.TrimSpace(m[rule.measure]),
		}
	}
	return domain.Ingredient{Name: trimmed}
}

// FillIngredients replaces the draft's ingredient slots with lines, keeping
// the one-slot minimum when lines is empty.
func FillIngredients(d *Draft, lines []string) {
	for d.IngredientCount() > 1 {
		d.RemoveIngredient(d.IngredientCount() - 1)
	}
	d.SetIngredient(0, IngredientName, "")
	d.SetIngredient(0, IngredientMeasure, "")

	for i, line := range lines {
		if i > 0 {
			d.AddIngredient()
		}
		ing := ParseIngredient(line)
		d.SetIngredient(i, IngredientName, ing.Name)
		d.SetIngredient(i, IngredientMeasure, ing.Measure)
	}
}

// FormatIngredient renders ing as a line ParseIngredient reads back. A name
// that would otherwise parse into a measure gets a trailing " =".
func FormatIngredient(ing domain.Ingredient) string {
	if strings.TrimSpace(ing.Measure) != "" {
		return ing.Name + " = " + ing.Measure
	}
	if ParseIngredient(ing.Name) == (domain.Ingredient{Name: strings.TrimSpace(ing.Name)}) {
		return ing.Name
	}
	return ing.Name + " ="
}
