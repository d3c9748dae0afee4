package term

import "github.com/charmbracelet/lipgloss"

var (
	accentFg = lipgloss.Color("#FFDC50")
	dimFg    = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"}

	statusStyle = lipgloss.NewStyle().Foreground(accentFg).Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(dimFg)
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5555"))
)
