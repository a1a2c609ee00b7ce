// Package tui is the terminal front end: a braille globe driven by the mouse,
// an info panel for the point and its antipode, and keyboard controls.
package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"antipode/internal/geom"
	"antipode/internal/locate"
)

type countriesMsg struct {
	idx *geom.Index
	err error
}

type locatedMsg struct {
	p   geom.GeoPoint
	err error
}

type frameMsg struct{}

func loadCountries(path string) tea.Cmd {
	return func() tea.Msg {
		idx, err := geom.LoadCountries(path)
		return countriesMsg{idx: idx, err: err}
	}
}

func locateCmd(l locate.Locator, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		p, err := locate.WithTimeout(context.Background(), l, timeout)
		return locatedMsg{p: p, err: err}
	}
}
