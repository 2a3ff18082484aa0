package live

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles for the property sheet.
type Styles struct {
	Title   lipgloss.Style
	Label   lipgloss.Style
	Focused lipgloss.Style
	Value   lipgloss.Style
	Muted   lipgloss.Style
	Error   lipgloss.Style
}

// DefaultStyles returns the default color scheme.
func DefaultStyles() Styles {
	return Styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8BC34A")),
		Label:   lipgloss.NewStyle().Foreground(lipgloss.Color("#d6dae0")),
		Focused: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#2196F3")),
		Value:   lipgloss.NewStyle().Foreground(lipgloss.Color("#f2f2f2")),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280")),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("#e53935")),
	}
}
