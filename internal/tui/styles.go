package tui

import "github.com/charmbracelet/lipgloss"

const (
	colorPink     lipgloss.Color = "#f5c2e7"
	colorLavender lipgloss.Color = "#b4befe"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorRed      lipgloss.Color = "#f38ba8"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorText     lipgloss.Color = "#cdd6f4"
	colorOverlay0 lipgloss.Color = "#6c7086"
	colorSurface1 lipgloss.Color = "#45475a"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorPink)
	subtitleStyle = lipgloss.NewStyle().Foreground(colorLavender)
	textStyle     = lipgloss.NewStyle().Foreground(colorText)
	dimStyle      = lipgloss.NewStyle().Foreground(colorOverlay0)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorPink)
	successStyle  = lipgloss.NewStyle().Foreground(colorGreen)
	errorStyle    = lipgloss.NewStyle().Foreground(colorRed)
	warnStyle     = lipgloss.NewStyle().Foreground(colorYellow)

	modeCardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSurface1).
			Padding(1, 3)
	modeCardActiveStyle = modeCardStyle.BorderForeground(colorPink)

	tileStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(colorSurface1).
			Width(5).
			Align(lipgloss.Center)
	tileCursorStyle = tileStyle.BorderForeground(colorLavender)
	tilePickedStyle = tileStyle.BorderForeground(colorPink).Bold(true)
	tileHomeStyle   = tileStyle.Foreground(colorGreen)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(colorLavender).
			Padding(1, 2)
)
