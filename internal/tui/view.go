package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"antipode/internal/geom"
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	l := m.layout()

	switch {
	case m.loading:
		msg := m.sp.View() + " Loading globe data…"
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, msg)
	case m.loadErr != nil:
		msg := errorStyle.Render("Failed to load country data: " + m.loadErr.Error())
		msg = lipgloss.NewStyle().MaxWidth(m.width).Render(msg)
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, msg)
	}

	// Header
	title := titleStyle.Render(" antipode ─ the other side of the world ")
	badge := ""
	if m.snap.IsLocked {
		badge = badgeStyle.Render("LOCKED")
	}
	gap := max(0, l.width-lipgloss.Width(title)-lipgloss.Width(badge))
	header := title + strings.Repeat(" ", gap) + badge

	// Map viewport
	var mapView string
	if m.showAttrs {
		// Render attributes table centered in the map area
		colW := 0
		for _, c := range m.tbl.Columns() {
			colW += c.Width + 3
		}
		maxW := min(l.mapW, max(32, colW))
		m.tbl.SetWidth(maxW - 4)
		m.tbl.SetHeight(min(l.mapH-2, 20))
		attrsBox := boxStyle.Width(maxW).Render(m.tbl.View())
		mapView = lipgloss.Place(l.mapW, l.mapH, lipgloss.Center, lipgloss.Center, attrsBox)
	} else {
		mapView = lipgloss.NewStyle().Width(l.mapW).Height(l.mapH).Render(m.renderGlobe(l.mapW, l.mapH))
	}

	// Body row
	cols := []string{}
	if m.showList {
		cols = append(cols, lipgloss.NewStyle().Width(sidebarWidth).Render(m.l.View()), " ")
	}
	cols = append(cols, mapView)
	if l.panel > 0 {
		cols = append(cols, m.renderPanel(l.panel, l.mapH))
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, cols...)

	// Footer / help
	var left string
	switch {
	case m.gotoMode:
		left = m.ti.View()
	case m.locating:
		left = m.sp.View() + " " + dimStyle.Render(m.status)
	default:
		left = dimStyle.Render(" " + m.status + " ")
	}
	coords := ""
	if m.snap.HasPoint {
		coords = dimStyle.Render("  " + geom.FormatCoordinates(m.snap.ActivePoint) + "  ")
	}
	spacer := strings.Repeat(" ", max(0, l.width-lipgloss.Width(left)-lipgloss.Width(coords)))
	footer := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().MaxWidth(l.width).Render(left+spacer+coords),
		m.renderHelp(l.width),
	)

	ui := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
	return appStyle.Width(l.width).Height(m.height).Render(ui)
}

func (m Model) renderHelp(w int) string {
	if !m.helpVisible {
		return ""
	}
	keys := []string{
		"click lock",
		"esc unlock",
		"g locate me",
		"/ go to",
		"tab countries",
		"a attrs",
		"f flip",
		"↑↓←→ rotate",
		"+/- zoom",
		"h help",
		"q quit",
	}
	return lipgloss.NewStyle().MaxWidth(w).Render(dimStyle.Render("  " + strings.Join(keys, "  ")))
}
