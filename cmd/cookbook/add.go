package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/hammamikhairi/cookbook/internal/display"
	"github.com/hammamikhairi/cookbook/internal/domain"
	"github.com/hammamikhairi/cookbook/internal/form"
	"github.com/hammamikhairi/cookbook/internal/notify"
	"github.com/hammamikhairi/cookbook/internal/picker"
)

// fieldFlags switch add to non-interactive mode when any is given.
var fieldFlags = []string{"name", "instructions", "category", "area", "ingredient", "image"}

type addFlags struct {
	name         string
	instructions string
	category     string
	area         string
	ingredients  []string
	image        string
}

func newAddCmd(a *app) *cobra.Command {
	var f addFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a recipe of your own",
		Long: `Add a recipe using an interactive terminal form.

Pass any of the field flags to skip the form:

  cookbook add --name "Clam Chowder" --instructions "Simmer gently." \
    --ingredient "Clams=1kg" --ingredient "2 cups milk" --image chowder.jpg

Ingredients are written "name=measure", "name: measure" or "2 tbsp name".
End a line with "=" to keep it all as the name, e.g. "7 Up =".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			for _, name := range fieldFlags {
				if cmd.Flags().Changed(name) {
					return a.addFromFlags(ctx, f)
				}
			}
			if !term.IsTerminal(os.Stdin.Fd()) {
				return errors.New("stdin is not a terminal: pass --name, --instructions and --ingredient")
			}

			shell := display.NewShell(domain.RouteAddRecipe, a.log.Named("nav"))
			shell.Handle(domain.RouteAddRecipe, a.addScreen(shell))
			return shell.Run(ctx)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.name, "name", "", "recipe name")
	flags.StringVar(&f.instructions, "instructions", "", "preparation steps")
	flags.StringVar(&f.category, "category", "", "category (default from recipe.default_category)")
	flags.StringVar(&f.area, "area", "", "cuisine or region")
	flags.StringArrayVar(&f.ingredients, "ingredient", nil, `ingredient line, repeatable (e.g. "Water=1L")`)
	flags.StringVar(&f.image, "image", "", "photo to attach")
	return cmd
}

// newController wires the add-recipe controller for one draft.
func (a *app) newController(p domain.ImagePicker, nav domain.Navigator, alert domain.Alerter) *form.Controller {
	draft := form.NewDraft(p, a.log.Named("draft"), form.WithDefaultCategory(a.cfg.DefaultCategory))
	return form.NewController(draft, a.repo, alert, nav, a.log.Named("form"))
}

func (a *app) addFromFlags(ctx context.Context, f addFlags) error {
	importer, err := picker.NewImporter(a.cfg.MediaDir, a.log.Named("import"))
	if err != nil {
		return err
	}
	nav := display.NewShell(domain.RouteAddRecipe, a.log.Named("nav"))
	alert := notify.NewCLIAlerter(a.log.Named("alert"), a.out)
	ctl := a.newController(picker.NewPath(f.image, importer, a.log.Named("picker")), nav, alert)

	d := ctl.Draft()
	d.SetField(form.FieldName, f.name)
	d.SetField(form.FieldInstructions, f.instructions)
	d.SetField(form.FieldArea, f.area)
	if strings.TrimSpace(f.category) != "" {
		d.SetField(form.FieldCategory, f.category)
	}
	form.FillIngredients(d, f.ingredients)

	if f.image != "" {
		if status := d.SelectImage(ctx); status != domain.PickSelected {
			fmt.Fprintf(os.Stderr, "warning: photo %s was not attached (see log)\n", f.image)
		}
	}

	if err := ctl.SaveRecipe(ctx); err != nil {
		return fmt.Errorf("%w: %w", errReported, err)
	}
	fmt.Fprintf(a.out, "id: %s\n", d.Recipe().ID)
	return nil
}

// addScreen is the interactive Add-Recipe screen.
func (a *app) addScreen(nav domain.Navigator) display.Screen {
	return func(ctx context.Context, _ string) error {
		importer, err := picker.NewImporter(a.cfg.MediaDir, a.log.Named("import"))
		if err != nil {
			return err
		}
		alert := notify.NewCLIAlerter(a.log.Named("alert"), a.out, notify.WithConfirm(confirmOK))
		ctl := a.newController(picker.NewDialog(".", importer, a.log.Named("picker")), nav, alert)
		return runAddForm(ctx, ctl)
	}
}

// runAddForm shows the form until the recipe is saved or the user backs
// out. A failed save keeps everything typed so far.
func runAddForm(ctx context.Context, ctl *form.Controller) error {
	d := ctl.Draft()
	for {
		v := valuesFrom(d.Recipe())
		err := newAddForm(&v).RunWithContext(ctx)
		if errors.Is(err, huh.ErrUserAborted) {
			return ctl.Cancel(ctx)
		}
		if err != nil {
			return fmt.Errorf("add form: %w", err)
		}

		v.apply(d)
		if v.pickPhoto {
			d.SelectImage(ctx)
		}
		if err := ctl.SaveRecipe(ctx); err == nil {
			return nil
		}
	}
}

// formValues backs the huh fields.
type formValues struct {
	name         string
	category     string
	area         string
	instructions string
	ingredients  string
	hasPhoto     bool
	pickPhoto    bool
}

func valuesFrom(r domain.Recipe) formValues {
	lines := make([]string, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		if line := form.FormatIngredient(ing); strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return formValues{
		name:         r.Name,
		category:     r.Category,
		area:         r.Area,
		instructions: r.Instructions,
		ingredients:  strings.Join(lines, "\n"),
		hasPhoto:     r.ImageURI != "",
	}
}

func (v formValues) apply(d *form.Draft) {
	d.SetField(form.FieldName, v.name)
	d.SetField(form.FieldCategory, v.category)
	d.SetField(form.FieldArea, v.area)
	d.SetField(form.FieldInstructions, v.instructions)
	form.FillIngredients(d, ingredientLines(v.ingredients))
}

// ingredientLines splits the text area into non-blank lines.
func ingredientLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}
	return out
}

var categorySuggestions = []string{
	"Seafood", "Beef", "Chicken", "Dessert", "Lamb", "Pasta", "Pork", "Side", "Starter", "Vegan", "Vegetarian",
}

func newAddForm(v *formValues) *huh.Form {
	photoTitle := "Add a photo?"
	if v.hasPhoto {
		photoTitle = "Replace the photo?"
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Placeholder("e.g., Clam Chowder").
				Value(&v.name),

			huh.NewInput().
				Title("Category").
				Suggestions(categorySuggestions).
				Value(&v.category),

			huh.NewInput().
				Title("Area").
				Description("Cuisine or region (optional)").
				Placeholder("e.g., American").
				Value(&v.area),
		),

		huh.NewGroup(
			huh.NewText().
				Title("Ingredients").
				Description(`One per line: "Clams=1kg", "Milk: 2 cups" or "2 tbsp butter". End with "=" for no measure.`).
				CharLimit(4000).
				Value(&v.ingredients),

			huh.NewText().
				Title("Instructions").
				CharLimit(8000).
				Value(&v.instructions),
		),

		huh.NewGroup(
			huh.NewConfirm().
				Title(photoTitle).
				Affirmative("Choose").
				Negative("Skip").
				Value(&v.pickPhoto),
		),
	).WithTheme(huh.ThemeBase())
}

// confirmOK blocks until the user dismisses an alert.
func confirmOK(ctx context.Context) error {
	err := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title("Press enter to continue").
			Affirmative("OK").
			Negative(""),
	)).WithTheme(huh.ThemeBase()).RunWithContext(ctx)
	if errors.Is(err, huh.ErrUserAborted) {
		return nil
	}
	return err
}
