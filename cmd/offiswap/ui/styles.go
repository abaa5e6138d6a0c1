package ui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63"))

	successStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42"))

	subtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	warnStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214"))

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))

	statusStyles = map[string]lipgloss.Style{
		"available": lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		"claimed":   lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		"exchanged": lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
)
