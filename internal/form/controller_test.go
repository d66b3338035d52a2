package form

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/cookbook/internal/domain"
	"github.com/hammamikhairi/cookbook/internal/logger"
	"github.com/hammamikhairi/cookbook/internal/notify"
	"github.com/hammamikhairi/cookbook/internal/recipe"
	"github.com/hammamikhairi/cookbook/internal/storage"
)

type fakeNavigator struct {
	routes []domain.Route
	err    error
}

func (n *fakeNavigator) Navigate(ctx context.Context, route domain.Route, param string) error {
	n.routes = append(n.routes, route)
	return n.err
}

// flakyStore wraps a real store and fails writes while failWrites is set.
type flakyStore struct {
	domain.KVStore
	failWrites bool
	failReads  bool
}

var errDisk = errors.New("disk full")

func (s *flakyStore) GetItem(ctx context.Context, key string) (string, bool, error) {
	if s.failReads {
		return "", false, errDisk
	}
	return s.KVStore.GetItem(ctx, key)
}

func (s *flakyStore) SetItem(ctx context.Context, key, value string) error {
	if s.failWrites {
		return errDisk
	}
	return s.KVStore.SetItem(ctx, key, value)
}

type harness struct {
	store  *flakyStore
	repo   *recipe.CustomRepository
	alerts *notify.Recorder
	nav    *fakeNavigator
	log    *logger.Logger
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	log := logger.New(logger.LevelOff, nil)
	store := &flakyStore{KVStore: storage.NewMemoryStore(log)}
	return &harness{
		store:  store,
		repo:   recipe.NewCustomRepository(store, log),
		alerts: &notify.Recorder{},
		nav:    &fakeNavigator{},
		log:    log,
	}
}

func (h *harness) controller(fill func(d *Draft)) *Controller {
	d := NewDraft(&fakePicker{}, h.log)
	if fill != nil {
		fill(d)
	}
	return NewController(d, h.repo, h.alerts, h.nav, h.log)
}

func fillValid(name, instructions string, ingredients ...domain.Ingredient) func(*Draft) {
	return func(d *Draft) {
		d.SetField(FieldName, name)
		d.SetField(FieldInstructions, instructions)
		for i, ing := range ingredients {
			if i > 0 {
				d.AddIngredient()
			}
			d.SetIngredient(i, IngredientName, ing.Name)
			d.SetIngredient(i, IngredientMeasure, ing.Measure)
		}
	}
}

func TestValidateFormPriority(t *testing.T) {
	water := domain.Ingredient{Name: "Water", Measure: "1L"}

	tests := []struct {
		name    string
		fill    func(*Draft)
		wantErr error
		wantMsg string
	}{
		{"blank name beats everything", fillValid("", ""), ErrNameRequired, MsgNameRequired},
		{"whitespace name with valid rest", fillValid("  \t", "Boil water", water), ErrNameRequired, MsgNameRequired},
		{"blank instructions", fillValid("Soup", "", water), ErrInstructionsRequired, MsgInstructionsRequired},
		{"whitespace instructions", fillValid("Soup", "\n  ", water), ErrInstructionsRequired, MsgInstructionsRequired},
		{"blank first ingredient", fillValid("Soup", "Boil water"), ErrIngredientRequired, MsgIngredientRequired},
		{
			"blank first ingredient with later named ones",
			fillValid("Soup", "Boil water", domain.Ingredient{Name: " "}, water),
			ErrIngredientRequired, MsgIngredientRequired,
		},
		{
			"only first ingredient is checked",
			fillValid("Soup", "Boil water", water, domain.Ingredient{}),
			nil, "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			c := h.controller(tt.fill)

			err := c.ValidateForm(context.Background())

			if tt.wantErr == nil {
				require.NoError(t, err)
				assert.Empty(t, h.alerts.Alerts())
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
			require.Len(t, h.alerts.Alerts(), 1, "exactly one alert per attempt")
			last, _ := h.alerts.Last()
			assert.Equal(t, notify.Alert{Title: TitleError, Message: tt.wantMsg}, last)
		})
	}
}

func TestSaveRecipeInvalidDoesNotPersist(t *testing.T) {
	h := newHarness(t)
	c := h.controller(fillValid("", "Boil water", domain.Ingredient{Name: "Water"}))
	ctx := context.Background()

	err := c.SaveRecipe(ctx)

	require.ErrorIs(t, err, ErrNameRequired)
	_, ok, _ := h.store.GetItem(ctx, domain.CustomRecipesKey)
	assert.False(t, ok, "nothing written")
	assert.Empty(t, h.nav.routes)
}

func TestSaveRecipeEndToEnd(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	first := h.controller(fillValid("Soup", "Boil water", domain.Ingredient{Name: "Water", Measure: "1L"}))
	require.NoError(t, first.SaveRecipe(ctx))

	stored, err := h.repo.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, first.Draft().Recipe(), stored[0])
	assert.Equal(t, "Soup", stored[0].Name)
	assert.Equal(t, domain.DefaultCategory, stored[0].Category)
	assert.True(t, stored[0].IsCustom)
	assert.NotEmpty(t, stored[0].ID)

	last, _ := h.alerts.Last()
	assert.Equal(t, notify.Alert{Title: TitleSuccess, Message: MsgSaved}, last)
	assert.Equal(t, []domain.Route{domain.RouteHome}, h.nav.routes)

	second := h.controller(fillValid("Stew", "Simmer", domain.Ingredient{Name: "Beef", Measure: "500g"}))
	require.NoError(t, second.SaveRecipe(ctx))

	stored, err = h.repo.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, first.Draft().Recipe(), stored[0], "first record unchanged")
	assert.Equal(t, second.Draft().Recipe(), stored[1], "newest last")
}

func TestSaveRecipeWriteFailureKeepsPriorContent(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	require.NoError(t, h.controller(fillValid("Soup", "Boil water", domain.Ingredient{Name: "Water"})).SaveRecipe(ctx))
	before, _, _ := h.store.GetItem(ctx, domain.CustomRecipesKey)
	h.alerts.Reset()
	h.nav.routes = nil

	h.store.failWrites = true
	c := h.controller(fillValid("Stew", "Simmer", domain.Ingredient{Name: "Beef"}))
	err := c.SaveRecipe(ctx)

	require.ErrorIs(t, err, ErrSaveFailed)
	require.ErrorIs(t, err, errDisk)

	h.store.failWrites = false
	after, _, _ := h.store.GetItem(ctx, domain.CustomRecipesKey)
	assert.Equal(t, before, after)

	assert.Equal(t, []notify.Alert{{Title: TitleError, Message: MsgSaveFailed}}, h.alerts.Alerts())
	assert.Empty(t, h.nav.routes, "stays on the form")
	assert.Equal(t, "Stew", c.Draft().Recipe().Name, "draft kept for retry")

	// Retry succeeds once the store recovers.
	h.alerts.Reset()
	require.NoError(t, c.SaveRecipe(ctx))
	stored, _ := h.repo.LoadAll(ctx)
	assert.Len(t, stored, 2)
}

func TestSaveRecipeReadFailure(t *testing.T) {
	h := newHarness(t)
	h.store.failReads = true

	err := h.controller(fillValid("Soup", "Boil water", domain.Ingredient{Name: "Water"})).SaveRecipe(context.Background())

	require.ErrorIs(t, err, ErrSaveFailed)
	assert.Equal(t, []notify.Alert{{Title: TitleError, Message: MsgSaveFailed}}, h.alerts.Alerts())
}

func TestSaveRecipeCorruptCollection(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	require.NoError(t, h.store.SetItem(ctx, domain.CustomRecipesKey, "not json"))

	err := h.controller(fillValid("Soup", "Boil water", domain.Ingredient{Name: "Water"})).SaveRecipe(ctx)

	require.ErrorIs(t, err, ErrSaveFailed)
	raw, _, _ := h.store.GetItem(ctx, domain.CustomRecipesKey)
	assert.Equal(t, "not json", raw, "corrupt data is not overwritten")
}

func TestSaveRecipeNavigationFailureStillSaves(t *testing.T) {
	h := newHarness(t)
	h.nav.err = errors.New("no shell")
	ctx := context.Background()

	require.NoError(t, h.controller(fillValid("Soup", "Boil water", domain.Ingredient{Name: "Water"})).SaveRecipe(ctx))
	stored, _ := h.repo.LoadAll(ctx)
	assert.Len(t, stored, 1)
}

func TestCancelNavigatesBack(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.controller(nil).Cancel(context.Background()))
	assert.Equal(t, []domain.Route{domain.RouteBack}, h.nav.routes)
}

func TestMessage(t *testing.T) {
	assert.Equal(t, MsgIngredientRequired, Message(ErrIngredientRequired))
	assert.Empty(t, Message(errDisk))
	assert.Empty(t, Message(nil))
}
