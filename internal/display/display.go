// Package display provides the terminal surfaces using Lip Gloss and
// Bubble Tea.
//
// [RenderList] and [RenderDetail] produce the Home and Detail screens as
// plain strings for one-shot commands. [Browser] is the interactive Home
// screen, and [Shell] moves between screens the way a stack navigator does.
package display

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hammamikhairi/cookbook/internal/domain"
)

// ── Styles ───────────────────────────────────────────────────────

var (
	// BannerStyle is a muted slate for the startup banner.
	BannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94a3b8"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bae6fd")).
			Bold(true)

	headingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bbf7d0"))

	primaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d4d4d8"))

	// Dimmed zinc for hints and metadata.
	secondaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#71717a"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fde68a")).
			Bold(true)

	customTagStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fca5a5")).
			Italic(true)

	urgentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fca5a5"))

	sepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#52525b"))
)

// ── Rendering ────────────────────────────────────────────────────

// RenderList renders the Home list. An empty list gets a hint instead.
func RenderList(recipes []domain.RecipeSummary) string {
	if len(recipes) == 0 {
		return secondaryStyle.Render("  No recipes yet. Add one with `cookbook add`.") + "\n"
	}
	var b strings.Builder
	for _, r := range recipes {
		b.WriteString(listLine(r, false))
		b.WriteByte('\n')
	}
	return b.String()
}

// listLine renders one Home entry.
func listLine(r domain.RecipeSummary, selected bool) string {
	name := primaryStyle.Render(r.Name)
	marker := "  "
	if selected {
		name = selectedStyle.Render(r.Name)
		marker = selectedStyle.Render("› ")
	}
	line := marker + name + secondaryStyle.Render(meta(r.Category, r.Area))
	if r.IsCustom {
		line += " " + customTagStyle.Render("mine")
	}
	return line
}

// meta joins the non-empty category and area as " · Seafood · French".
func meta(category, area string) string {
	var parts []string
	for _, p := range []string{category, area} {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return "  " + strings.Join(parts, " · ")
}

// RenderDetail renders the Detail screen for r.
func RenderDetail(r *domain.Recipe) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(r.Name))
	if m := meta(r.Category, r.Area); m != "" {
		b.WriteString(secondaryStyle.Render(m))
	}
	b.WriteByte('\n')
	if r.ImageURI != "" {
		b.WriteString(secondaryStyle.Render("  image: " + r.ImageURI))
		b.WriteByte('\n')
	}

	b.WriteByte('\n')
	b.WriteString(headingStyle.Render("Ingredients"))
	b.WriteByte('\n')
	for _, ing := range r.Ingredients {
		if domain.Blank(ing.Name) {
			continue
		}
		line := "  • " + ing.Name
		if !domain.Blank(ing.Measure) {
			line += sepStyle.Render(" ─ ") + ing.Measure
		}
		b.WriteString(primaryStyle.Render(line))
		b.WriteByte('\n')
	}

	b.WriteByte('\n')
	b.WriteString(headingStyle.Render("Instructions"))
	b.WriteByte('\n')
	for _, para := range strings.Split(strings.TrimSpace(r.Instructions), "\n") {
		if strings.TrimSpace(para) == "" {
			continue
		}
		b.WriteString(primaryStyle.Render("  " + strings.TrimSpace(para)))
		b.WriteByte('\n')
	}
	return b.String()
}

// RenderCount is the footer under a list, e.g. "5 recipes (1 mine)".
func RenderCount(recipes []domain.RecipeSummary) string {
	custom := 0
	for _, r := range recipes {
		if r.IsCustom {
			custom++
		}
	}
	noun := "recipes"
	if len(recipes) == 1 {
		noun = "recipe"
	}
	return secondaryStyle.Render(fmt.Sprintf("  %d %s (%d mine)", len(recipes), noun, custom))
}
