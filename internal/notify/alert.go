// Package notify provides user-facing alert implementations.
package notify

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/hammamikhairi/cookbook/internal/domain"
	"github.com/hammamikhairi/cookbook/internal/logger"
)

// Compile-time interface checks.
var (
	_ domain.Alerter = (*CLIAlerter)(nil)
	_ domain.Alerter = (*Recorder)(nil)
)

var (
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 2)

	errorBorder   = lipgloss.Color("#fca5a5")
	successBorder = lipgloss.Color("#bbf7d0")
	infoBorder    = lipgloss.Color("#94a3b8")

	titleStyle = lipgloss.NewStyle().Bold(true)
)

// CLIAlerter prints alerts as a bordered box. When confirm is non-nil the
// alert blocks until it returns, mirroring a modal with a single OK button.
type CLIAlerter struct {
	log     *logger.Logger
	out     io.Writer
	confirm func(ctx context.Context) error
}

// Option configures a CLIAlerter.
type Option func(*CLIAlerter)

// WithConfirm makes every alert wait for fn (e.g. "press enter").
func WithConfirm(fn func(ctx context.Context) error) Option {
	return func(a *CLIAlerter) { a.confirm = fn }
}

// NewCLIAlerter writes alerts to out. If out is nil, os.Stdout is used.
func NewCLIAlerter(log *logger.Logger, out io.Writer, opts ...Option) *CLIAlerter {
	if out == nil {
		out = os.Stdout
	}
	a := &CLIAlerter{log: log, out: out}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Alert renders title and message and waits for confirmation if configured.
func (a *CLIAlerter) Alert(ctx context.Context, title, message string) error {
	a.log.Debug("alert: %s: %s", title, message)

	border := borderFor(title)
	box := boxStyle.BorderForeground(border).Render(
		titleStyle.Foreground(border).Render(title) + "\n" + message,
	)
	if _, err := fmt.Fprintln(a.out, box); err != nil {
		return fmt.Errorf("writing alert: %w", err)
	}
	if a.confirm != nil {
		return a.confirm(ctx)
	}
	return nil
}

// borderFor picks the box colour for an alert title.
func borderFor(title string) lipgloss.Color {
	switch title {
	case domain.AlertTitleError:
		return errorBorder
	case domain.AlertTitleSuccess:
		return successBorder
	default:
		return infoBorder
	}
}

// Alert is one recorded alert.
type Alert struct {
	Title   string
	Message string
}

// Recorder keeps every alert in memory. Used by tests and by surfaces that
// render alerts themselves.
type Recorder struct {
	mu     sync.Mutex
	alerts []Alert
}

// Alert records the alert.
func (r *Recorder) Alert(ctx context.Context, title, message string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.alerts = append(r.alerts, Alert{Title: title, Message: message})
	return nil
}

// Alerts returns a copy of everything recorded so far.
func (r *Recorder) Alerts() []Alert {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Alert, len(r.alerts))
	copy(out, r.alerts)
	return out
}

// Last returns the most recent alert and whether there was one.
func (r *Recorder) Last() (Alert, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.alerts) == 0 {
		return Alert{}, false
	}
	return r.alerts[len(r.alerts)-1], true
}

// Reset forgets recorded alerts.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.alerts = nil
}
