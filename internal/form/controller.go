package form

import (
	"context"
	"errors"
	"fmt"

	"github.com/hammamikhairi/cookbook/internal/domain"
	"github.com/hammamikhairi/cookbook/internal/logger"
)

// Validation failures, in the order they are checked.
var (
	ErrNameRequired         = errors.New("recipe name is required")
	ErrInstructionsRequired = errors.New("instructions are required")
	ErrIngredientRequired   = errors.New("first ingredient needs a name")
)

// ErrSaveFailed wraps any load/encode/write failure during SaveRecipe.
var ErrSaveFailed = errors.New("saving recipe failed")

// Alert text shown to the user.
const (
	TitleError   = domain.AlertTitleError
	TitleSuccess = domain.AlertTitleSuccess

	MsgNameRequired         = "Please enter a name for the recipe"
	MsgInstructionsRequired = "Please add instructions"
	MsgIngredientRequired   = "Please add at least one ingredient"
	MsgSaved                = "Your recipe has been added successfully!"
	MsgSaveFailed           = "Unable to save the recipe"
)

// Message returns the user-facing text for a validation error, or "" when
// err is not one.
func Message(err error) string {
	switch {
	case errors.Is(err, ErrNameRequired):
		return MsgNameRequired
	case errors.Is(err, ErrInstructionsRequired):
		return MsgInstructionsRequired
	case errors.Is(err, ErrIngredientRequired):
		return MsgIngredientRequired
	default:
		return ""
	}
}

// Controller validates a draft and appends it to the custom recipe
// collection. It depends only on interfaces.
type Controller struct {
	draft *Draft
	repo  domain.RecipeRepository
	alert domain.Alerter
	nav   domain.Navigator
	log   *logger.Logger
}

// NewController wires a controller around draft.
func NewController(draft *Draft, repo domain.RecipeRepository, alert domain.Alerter, nav domain.Navigator, log *logger.Logger) *Controller {
	return &Controller{
		draft: draft,
		repo:  repo,
		alert: alert,
		nav:   nav,
		log:   log,
	}
}

// Draft returns the draft being edited.
func (c *Controller) Draft() *Draft { return c.draft }

// Validate checks the draft without alerting. Only the first ingredient
// slot's name is checked; later slots may be blank.
func Validate(r domain.Recipe) error {
	if domain.Blank(r.Name) {
		return ErrNameRequired
	}
	if domain.Blank(r.Instructions) {
		return ErrInstructionsRequired
	}
	if len(r.Ingredients) == 0 || domain.Blank(r.Ingredients[0].Name) {
		return ErrIngredientRequired
	}
	return nil
}

// ValidateForm checks the draft and alerts the first failure. Returns nil
// when the draft may be saved.
func (c *Controller) ValidateForm(ctx context.Context) error {
	err := Validate(c.draft.recipe)
	if err == nil {
		return nil
	}
	c.log.Debug("validation failed: %v", err)
	c.show(ctx, TitleError, Message(err))
	return err
}

// SaveRecipe validates the draft, appends it to the stored collection and
// returns home. On a storage failure the user sees one generic alert, the
// cause is logged, and the draft is kept so the user can retry.
func (c *Controller) SaveRecipe(ctx context.Context) error {
	if err := c.ValidateForm(ctx); err != nil {
		return err
	}

	if err := c.persist(ctx); err != nil {
		c.log.Error("saving recipe %s: %v", c.draft.recipe.ID, err)
		c.show(ctx, TitleError, MsgSaveFailed)
		return fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}

	c.log.Info("saved custom recipe %s (%q)", c.draft.recipe.ID, c.draft.recipe.Name)
	c.show(ctx, TitleSuccess, MsgSaved)
	if err := c.nav.Navigate(ctx, domain.RouteHome, ""); err != nil {
		c.log.Warn("navigating home: %v", err)
	}
	return nil
}

// Cancel leaves the form without saving.
func (c *Controller) Cancel(ctx context.Context) error {
	c.log.Debug("draft %s discarded", c.draft.recipe.ID)
	return c.nav.Navigate(ctx, domain.RouteBack, "")
}

func (c *Controller) persist(ctx context.Context) error {
	recipes, err := c.repo.LoadAll(ctx)
	if err != nil {
		return err
	}
	recipes = append(recipes, c.draft.Recipe())
	return c.repo.SaveAll(ctx, recipes)
}

func (c *Controller) show(ctx context.Context, title, message string) {
	if err := c.alert.Alert(ctx, title, message); err != nil {
		c.log.Warn("alert %q: %v", title, err)
	}
}
