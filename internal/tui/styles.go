package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles for the browser table.
type Styles struct {
	Header   lipgloss.Style
	Row      lipgloss.Style
	Cursor   lipgloss.Style
	Selected lipgloss.Style
	Marker   lipgloss.Style
	Status   lipgloss.Style
}

// DefaultStyles returns the default browser styles.
func DefaultStyles() Styles {
	return Styles{
		Header:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Row:      lipgloss.NewStyle(),
		Cursor:   lipgloss.NewStyle().Reverse(true),
		Selected: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Marker:   lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Status:   lipgloss.NewStyle().Faint(true),
	}
}
