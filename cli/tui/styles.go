package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorTitle    = lipgloss.Color("#FFFFFF")
	colorSubtle   = lipgloss.Color("#666666")
	colorSelected = lipgloss.Color("#7D56F4")
	colorProcess  = lipgloss.Color("#88C0D0")
	colorPhase    = lipgloss.Color("#A3BE8C")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorTitle)

	subtleStyle = lipgloss.NewStyle().
			Foreground(colorSubtle)

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorSelected)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorSubtle)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(colorSubtle)

	processStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorProcess)

	phaseStyle = lipgloss.NewStyle().
			Foreground(colorPhase)
)
