package display

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/cookbook/internal/domain"
	"github.com/hammamikhairi/cookbook/internal/logger"
	"github.com/hammamikhairi/cookbook/internal/recipe"
	"github.com/hammamikhairi/cookbook/internal/storage"
)

func newTestBrowser(t *testing.T) (Browser, *recipe.CustomRepository) {
	t.Helper()
	log := logger.New(logger.LevelOff, nil)
	seed, err := recipe.NewSeedSource(log)
	require.NoError(t, err)
	repo := recipe.NewCustomRepository(storage.NewMemoryStore(log), log)
	b := NewBrowser(recipe.NewCatalog(seed, repo, log), nil, log)
	return loaded(t, b), repo
}

// loaded runs the list query synchronously and feeds the result back.
func loaded(t *testing.T, b Browser) Browser {
	t.Helper()
	return send(t, b, b.load()())
}

func send(t *testing.T, b Browser, msg tea.Msg) Browser {
	t.Helper()
	m, _ := b.Update(msg)
	out, ok := m.(Browser)
	require.True(t, ok)
	return out
}

func press(t *testing.T, b Browser, k string) (Browser, tea.Cmd) {
	t.Helper()
	var msg tea.KeyMsg
	switch k {
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	m, cmd := b.Update(msg)
	return m.(Browser), cmd
}

func TestBrowserListsCatalog(t *testing.T) {
	b, _ := newTestBrowser(t)

	require.NotEmpty(t, b.Recipes())
	sel, ok := b.Selected()
	require.True(t, ok)
	assert.Equal(t, "Garlic Shrimp", sel.Name)
	assert.Contains(t, b.View(), "Garlic Shrimp")
}

func TestBrowserCursorStaysInBounds(t *testing.T) {
	b, _ := newTestBrowser(t)
	n := len(b.Recipes())

	b, _ = press(t, b, "up")
	sel, _ := b.Selected()
	assert.Equal(t, b.Recipes()[0].ID, sel.ID)

	for i := 0; i < n+3; i++ {
		b, _ = press(t, b, "down")
	}
	sel, _ = b.Selected()
	assert.Equal(t, b.Recipes()[n-1].ID, sel.ID)

	b, _ = press(t, b, "k")
	sel, _ = b.Selected()
	assert.Equal(t, b.Recipes()[n-2].ID, sel.ID)
}

func TestBrowserOpensDetailAndGoesBack(t *testing.T) {
	b, _ := newTestBrowser(t)
	b, _ = press(t, b, "down")

	b, cmd := press(t, b, "enter")
	require.NotNil(t, cmd)
	b = send(t, b, cmd())

	require.NotNil(t, b.Detail())
	assert.Equal(t, "Baked Salmon with Fennel", b.Detail().Name)
	assert.Contains(t, b.View(), "Ingredients")

	// List keys are inert on the detail screen.
	b, cmd = press(t, b, "a")
	assert.Nil(t, cmd)
	assert.Equal(t, OutcomeQuit, b.Outcome())

	b, _ = press(t, b, "esc")
	assert.Nil(t, b.Detail())
}

func TestBrowserAddRequestQuits(t *testing.T) {
	b, _ := newTestBrowser(t)

	b, cmd := press(t, b, "a")
	require.NotNil(t, cmd)
	assert.Equal(t, OutcomeAdd, b.Outcome())
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestBrowserQuit(t *testing.T) {
	b, _ := newTestBrowser(t)

	b, cmd := press(t, b, "q")
	require.NotNil(t, cmd)
	assert.Equal(t, OutcomeQuit, b.Outcome())
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestBrowserReloadPicksUpNewRecipes(t *testing.T) {
	b, repo := newTestBrowser(t)
	before := len(b.Recipes())

	require.NoError(t, repo.SaveAll(context.Background(), []domain.Recipe{{
		ID:           "mine-1",
		Name:         "Clam Chowder",
		Category:     "Seafood",
		Instructions: "Simmer.",
		Ingredients:  []domain.Ingredient{{Name: "Clams", Measure: "1kg"}},
		IsCustom:     true,
	}}))

	b, cmd := press(t, b, "r")
	require.NotNil(t, cmd)
	b = send(t, b, cmd())

	require.Len(t, b.Recipes(), before+1)
	last := b.Recipes()[before]
	assert.Equal(t, "Clam Chowder", last.Name)
	assert.True(t, last.IsCustom)
	assert.Contains(t, b.View(), "1 mine")
}

func TestBrowserSearch(t *testing.T) {
	b, _ := newTestBrowser(t)

	b, _ = press(t, b, "/")
	for _, r := range "sal" {
		b, _ = press(t, b, string(r))
	}
	assert.Equal(t, "sal", b.filter.Value())

	b = loaded(t, b)
	require.Len(t, b.Recipes(), 1)
	assert.Equal(t, "Baked Salmon with Fennel", b.Recipes()[0].Name)

	// Typing while searching does not trigger list shortcuts.
	assert.Equal(t, OutcomeQuit, b.Outcome())

	b, cmd := press(t, b, "esc")
	require.NotNil(t, cmd)
	b = send(t, b, cmd())
	assert.Empty(t, b.filter.Value())
	assert.Greater(t, len(b.Recipes()), 1)
}

func TestBrowserLoadErrorKeepsList(t *testing.T) {
	b, _ := newTestBrowser(t)
	n := len(b.Recipes())

	b = send(t, b, recipesMsg{err: assert.AnError})
	assert.Len(t, b.Recipes(), n)
	assert.Contains(t, b.View(), "Could not load recipes")
}

func TestWaitForChange(t *testing.T) {
	ctx := context.Background()
	assert.Nil(t, waitForChange(ctx, nil))

	ch := make(chan struct{}, 1)
	ch <- struct{}{}
	assert.Equal(t, changedMsg{}, waitForChange(ctx, ch)())

	close(ch)
	assert.Nil(t, waitForChange(ctx, ch)())
}

// runCmd runs cmd on its own goroutine, as the bubbletea runtime does.
func runCmd(cmd tea.Cmd) <-chan tea.Msg {
	out := make(chan tea.Msg, 1)
	go func() { out <- cmd() }()
	return out
}

func recv(t *testing.T, ch <-chan tea.Msg) tea.Msg {
	t.Helper()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("command did not return")
		return nil
	}
}

func TestReenteredBrowserReceivesEveryChange(t *testing.T) {
	changes := make(chan struct{})
	log := logger.New(logger.LevelOff, nil)

	// Home -> Add -> cancel -> Home, several times over one shared channel.
	for cycle := 0; cycle < 3; cycle++ {
		exitedCtx, exit := context.WithCancel(context.Background())
		exited := NewBrowser(nil, changes, log)
		exited.ctx = exitedCtx
		pending := runCmd(waitForChange(exited.ctx, exited.changes))
		exit()
		assert.Nil(t, recv(t, pending), "cycle %d: exited browser returns without a change", cycle)
	}

	liveCtx, stop := context.WithCancel(context.Background())
	defer stop()
	live := NewBrowser(nil, changes, log)
	live.ctx = liveCtx

	for i := 0; i < 5; i++ {
		got := runCmd(waitForChange(live.ctx, live.changes))
		changes <- struct{}{}
		assert.Equal(t, changedMsg{}, recv(t, got), "change %d", i)
	}
}

func TestWaitForChangeStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	changes := make(chan struct{}, 1)
	cancel()

	assert.Nil(t, recv(t, runCmd(waitForChange(ctx, changes))))
	changes <- struct{}{}
	assert.Len(t, changes, 1, "signal left for the next reader")
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "quit", OutcomeQuit.String())
	assert.Equal(t, "add", OutcomeAdd.String())
	assert.Equal(t, "unknown", Outcome(9).String())
}
