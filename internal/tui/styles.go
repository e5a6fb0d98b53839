package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// ------- styling (Lip Gloss) -------
var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	accentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	mutedStyle   = lipgloss.NewStyle().Faint(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)

	selectedStyle = lipgloss.NewStyle().Bold(true).Reverse(true)
	helpStyle     = lipgloss.NewStyle().Faint(true)

	tabStyle       = lipgloss.NewStyle().Padding(0, 2).Faint(true)
	activeTabStyle = lipgloss.NewStyle().Padding(0, 2).Bold(true).
			Foreground(lipgloss.Color("0")).Background(lipgloss.Color("212"))

	buttonStyle = lipgloss.NewStyle().Padding(0, 3).Bold(true).
			Foreground(lipgloss.Color("0")).Background(lipgloss.Color("205"))
	buttonBusyStyle = lipgloss.NewStyle().Padding(0, 3).
			Foreground(lipgloss.Color("0")).Background(lipgloss.Color("214"))
	buttonOffStyle = lipgloss.NewStyle().Padding(0, 3).Faint(true).
			Background(lipgloss.Color("238"))

	resultNumberStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	resultTextStyle   = lipgloss.NewStyle().Bold(true)
	resultBoxStyle    = lipgloss.NewStyle().
				Border(lipgloss.DoubleBorder()).
				BorderForeground(lipgloss.Color("212")).
				Padding(1, 4).
				Align(lipgloss.Center)
)

func panelString(inner string) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Padding(0, 1)
	return border.Render(inner)
}

func inputBox(inner string) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Padding(0, 1).
		Render(inner)
}
