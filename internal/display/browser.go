package display

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hammamikhairi/cookbook/internal/domain"
	"github.com/hammamikhairi/cookbook/internal/logger"
)

// Outcome is why the browser exited.
type Outcome int

const (
	OutcomeQuit Outcome = iota
	OutcomeAdd          // user asked for the Add-Recipe screen
)

// String returns a human-readable outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeQuit:
		return "quit"
	case OutcomeAdd:
		return "add"
	default:
		return "unknown"
	}
}

// ── Key bindings ─────────────────────────────────────────────────

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Open   key.Binding
	Back   key.Binding
	Add    key.Binding
	Reload key.Binding
	Filter key.Binding
	Quit   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Open:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Back:   key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back")),
		Add:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add recipe")),
		Reload: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Filter: key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Open, k.Add, k.Filter, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Open, k.Back},
		{k.Add, k.Reload, k.Filter, k.Quit},
	}
}

// detailHelp is the subset shown on the Detail screen.
type detailHelp struct{ k keyMap }

func (d detailHelp) ShortHelp() []key.Binding  { return []key.Binding{d.k.Back, d.k.Quit} }
func (d detailHelp) FullHelp() [][]key.Binding { return [][]key.Binding{d.ShortHelp()} }

// ── Messages ─────────────────────────────────────────────────────

type recipesMsg struct {
	recipes []domain.RecipeSummary
	err     error
}

type detailMsg struct {
	recipe *domain.Recipe
	err    error
}

// changedMsg reports that the backing store was written.
type changedMsg struct{}

// ── Browser ──────────────────────────────────────────────────────

// Browser is the interactive Home screen. It lists the catalog, opens a
// recipe's Detail in place, and reloads whenever changes delivers.
type Browser struct {
	ctx     context.Context
	source  domain.RecipeSource
	changes <-chan struct{}
	log     *logger.Logger

	keys      keyMap
	help      help.Model
	filter    textinput.Model
	filtering bool

	recipes []domain.RecipeSummary
	cursor  int
	detail  *domain.Recipe
	status  string
	outcome Outcome
	width   int
}

// NewBrowser creates a browser over source. changes may be nil when the
// store cannot be watched; r still reloads by hand.
func NewBrowser(source domain.RecipeSource, changes <-chan struct{}, log *logger.Logger) Browser {
	ti := textinput.New()
	ti.Prompt = "search> "
	ti.PromptStyle = secondaryStyle
	ti.TextStyle = primaryStyle
	ti.CharLimit = 80

	return Browser{
		ctx:     context.Background(),
		source:  source,
		changes: changes,
		log:     log,
		keys:    defaultKeys(),
		help:    help.New(),
		filter:  ti,
	}
}

// Outcome reports why the browser exited.
func (b Browser) Outcome() Outcome { return b.outcome }

// Recipes returns the entries currently listed.
func (b Browser) Recipes() []domain.RecipeSummary { return b.recipes }

// Selected returns the entry under the cursor.
func (b Browser) Selected() (domain.RecipeSummary, bool) {
	if b.cursor < 0 || b.cursor >= len(b.recipes) {
		return domain.RecipeSummary{}, false
	}
	return b.recipes[b.cursor], true
}

// Detail returns the recipe being shown, or nil on the Home list.
func (b Browser) Detail() *domain.Recipe { return b.detail }

func (b Browser) Init() tea.Cmd {
	return tea.Batch(
		b.load(),
		waitForChange(b.ctx, b.changes),
		tea.SetWindowTitle("Cookbook"),
	)
}

// load fetches the list, filtered by the search box when it has text.
func (b Browser) load() tea.Cmd {
	ctx, source := b.ctx, b.source
	query := strings.TrimSpace(b.filter.Value())
	return func() tea.Msg {
		if query != "" {
			recipes, err := source.Search(ctx, query)
			return recipesMsg{recipes: recipes, err: err}
		}
		recipes, err := source.List(ctx)
		return recipesMsg{recipes: recipes, err: err}
	}
}

func (b Browser) open(id string) tea.Cmd {
	ctx, source := b.ctx, b.source
	return func() tea.Msg {
		r, err := source.Get(ctx, id)
		return detailMsg{recipe: r, err: err}
	}
}

// waitForChange blocks on ch and turns the next signal into a changedMsg.
// It gives up without consuming a signal once ctx is done, so a browser
// that has exited never takes a change meant for the next one.
func waitForChange(ctx context.Context, ch <-chan struct{}) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-ch:
			if !ok {
				return nil
			}
			return changedMsg{}
		}
	}
}

func (b Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.width = msg.Width
		b.help.Width = msg.Width
		return b, nil

	case recipesMsg:
		if msg.err != nil {
			b.log.Error("loading recipes: %v", msg.err)
			b.status = "Could not load recipes"
			return b, nil
		}
		b.recipes = msg.recipes
		b.status = ""
		if b.cursor >= len(b.recipes) {
			b.cursor = max(0, len(b.recipes)-1)
		}
		return b, nil

	case detailMsg:
		if msg.err != nil {
			b.log.Warn("opening recipe: %v", msg.err)
			b.status = "Recipe not found"
			return b, nil
		}
		b.detail = msg.recipe
		return b, nil

	case changedMsg:
		b.log.Debug("store changed, reloading")
		return b, tea.Batch(b.load(), waitForChange(b.ctx, b.changes))

	case tea.KeyMsg:
		if b.filtering {
			return b.updateFilter(msg)
		}
		return b.updateKeys(msg)
	}
	return b, nil
}

func (b Browser) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return b, tea.Quit
	case tea.KeyEnter:
		b.filtering = false
		b.filter.Blur()
		return b, nil
	case tea.KeyEsc:
		b.filtering = false
		b.filter.Blur()
		b.filter.Reset()
		b.cursor = 0
		return b, b.load()
	}

	before := b.filter.Value()
	var cmd tea.Cmd
	b.filter, cmd = b.filter.Update(msg)
	if b.filter.Value() == before {
		return b, cmd
	}
	b.cursor = 0
	return b, tea.Batch(cmd, b.load())
}

func (b Browser) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, b.keys.Quit) {
		b.outcome = OutcomeQuit
		return b, tea.Quit
	}

	if b.detail != nil {
		if key.Matches(msg, b.keys.Back) {
			b.detail = nil
		}
		return b, nil
	}

	switch {
	case key.Matches(msg, b.keys.Up):
		if b.cursor > 0 {
			b.cursor--
		}
	case key.Matches(msg, b.keys.Down):
		if b.cursor < len(b.recipes)-1 {
			b.cursor++
		}
	case key.Matches(msg, b.keys.Open):
		if sel, ok := b.Selected(); ok {
			return b, b.open(sel.ID)
		}
	case key.Matches(msg, b.keys.Add):
		b.outcome = OutcomeAdd
		return b, tea.Quit
	case key.Matches(msg, b.keys.Reload):
		return b, b.load()
	case key.Matches(msg, b.keys.Filter):
		b.filtering = true
		return b, b.filter.Focus()
	}
	return b, nil
}

func (b Browser) View() string {
	var s strings.Builder

	if b.detail != nil {
		s.WriteString(RenderDetail(b.detail))
		s.WriteByte('\n')
		s.WriteString(b.help.View(detailHelp{b.keys}))
		return s.String()
	}

	s.WriteString(titleStyle.Render("Recipes"))
	s.WriteString("\n\n")

	if b.filtering || b.filter.Value() != "" {
		s.WriteString("  " + b.filter.View())
		s.WriteString("\n\n")
	}

	if len(b.recipes) == 0 {
		s.WriteString(secondaryStyle.Render("  Nothing to show. Press a to add a recipe."))
		s.WriteByte('\n')
	}
	for i, r := range b.recipes {
		s.WriteString(listLine(r, i == b.cursor))
		s.WriteByte('\n')
	}

	s.WriteByte('\n')
	s.WriteString(RenderCount(b.recipes))
	s.WriteByte('\n')
	if b.status != "" {
		s.WriteString(urgentStyle.Render("  " + b.status))
		s.WriteByte('\n')
	}
	s.WriteString(lipgloss.NewStyle().MarginTop(1).Render(b.help.View(b.keys)))
	return s.String()
}

// RunBrowser shows b until the user quits or asks to add a recipe. The
// browser's pending commands are cancelled when it returns.
func RunBrowser(ctx context.Context, b Browser, opts ...tea.ProgramOption) (Outcome, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	b.ctx = ctx

	opts = append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}, opts...)
	final, err := tea.NewProgram(b, opts...).Run()
	if err != nil {
		return OutcomeQuit, err
	}
	if fb, ok := final.(Browser); ok {
		return fb.outcome, nil
	}
	return OutcomeQuit, nil
}
