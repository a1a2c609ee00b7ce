package tui

import "github.com/charmbracelet/lipgloss"

// Styles
var (
	baseFg    = lipgloss.Color("#E6E6E6")
	baseDimFg = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"}
	accentFg  = lipgloss.Color("#7C3AED")
	borderCol = lipgloss.Color("#243141")

	landFg  = lipgloss.Color("#A89F8D")
	mossFg  = lipgloss.Color("#7A9E7E")
	terraFg = lipgloss.Color("#C2715E")
	oceanFg = lipgloss.Color("#5B8DB8")
	limbFg  = lipgloss.Color("#3B4A5C")
	gridFg  = lipgloss.Color("#1F2A36")
	errorFg = lipgloss.Color("#EF4444")

	appStyle   = lipgloss.NewStyle().Foreground(baseFg)
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderCol).Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Foreground(accentFg).Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(baseDimFg)
	errorStyle = lipgloss.NewStyle().Foreground(errorFg).Bold(true)
	badgeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#0B0F14")).Background(terraFg).Bold(true).Padding(0, 1)

	fromStyle  = lipgloss.NewStyle().Foreground(mossFg).Bold(true)
	toStyle    = lipgloss.NewStyle().Foreground(terraFg).Bold(true)
	oceanStyle = lipgloss.NewStyle().Foreground(oceanFg).Bold(true)
	labelStyle = lipgloss.NewStyle().Foreground(baseDimFg).Bold(true)

	inkStyles = map[ink]lipgloss.Style{
		inkGrid:     lipgloss.NewStyle().Foreground(gridFg),
		inkLimb:     lipgloss.NewStyle().Foreground(limbFg),
		inkLand:     lipgloss.NewStyle().Foreground(landFg),
		inkActive:   lipgloss.NewStyle().Foreground(mossFg),
		inkAntipode: lipgloss.NewStyle().Foreground(terraFg),
	}
)
