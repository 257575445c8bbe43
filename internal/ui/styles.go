// Package ui holds the lipgloss styles the commands render with.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/dayquest/internal/models"
)

type Styles struct {
	Title   lipgloss.Style
	Section lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Danger  lipgloss.Style
	Badge   lipgloss.Style
	Box     lipgloss.Style
}

// New builds the styles for a theme id. Unknown ids fall back to the default theme.
func New(themeID string) Styles {
	theme, _ := models.FindTheme(themeID)
	accent := lipgloss.Color(theme.Accent)

	value := lipgloss.Color("255")
	if !theme.IsDark {
		value = lipgloss.Color("252")
	}

	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			MarginBottom(1),
		Section: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			MarginTop(1),
		Label: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Width(18),
		Value: lipgloss.NewStyle().
			Foreground(value).
			Bold(true),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")),
		Success: lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")),
		Warning: lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Italic(true),
		Danger: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true),
		Badge: lipgloss.NewStyle().
			Foreground(lipgloss.Color("236")).
			Background(accent).
			Padding(0, 1).
			Bold(true),
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 2),
	}
}

// Row renders a label and value on one line.
func (s Styles) Row(label string, value any) string {
	return s.Label.Render(label) + s.Value.Render(fmt.Sprint(value))
}

// Bar renders a filled/empty bar of the given width for done out of total.
func Bar(done, total, width int) string {
	if total <= 0 || width <= 0 {
		return ""
	}
	filled := min(max(done*width/total, 0), width)
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// Priority colors a priority label.
func (s Styles) Priority(p models.Priority) string {
	switch p {
	case models.PriorityHigh:
		return s.Danger.Render(string(p))
	case models.PriorityMedium:
		return s.Warning.Render(string(p))
	default:
		return s.Muted.Render(string(p))
	}
}
