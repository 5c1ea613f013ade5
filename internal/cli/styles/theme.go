// Package styles provides reusable lipgloss-based CLI output components.
package styles

import "github.com/charmbracelet/lipgloss"

// Theme holds the lipgloss styles used by dusk's CLI output.
type Theme struct {
	Title    lipgloss.Style
	Subtle   lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	ErrStyle lipgloss.Style

	DarkBadge  lipgloss.Style
	LightBadge lipgloss.Style
}

// NewTheme returns the default CLI theme.
func NewTheme() *Theme {
	return &Theme{
		Title:    lipgloss.NewStyle().Bold(true),
		Subtle:   lipgloss.NewStyle().Foreground(lipgloss.Color("#909090")),
		Success:  lipgloss.NewStyle().Foreground(lipgloss.Color("#4ade80")),
		Warning:  lipgloss.NewStyle().Foreground(lipgloss.Color("#fbbf24")),
		ErrStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("#f87171")),

		DarkBadge: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e5e5e5")).
			Background(lipgloss.Color("#1a1a1b")).
			Padding(0, 1),
		LightBadge: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#1a1a1b")).
			Background(lipgloss.Color("#e5e5e5")).
			Padding(0, 1),
	}
}

// ModeBadge renders "dark" or "light" as a styled badge.
func (t *Theme) ModeBadge(isDark bool) string {
	if isDark {
		return t.DarkBadge.Render("dark")
	}
	return t.LightBadge.Render("light")
}
