package tui

import (
	"fmt"

	list "github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"antipode/internal/geom"
	"antipode/internal/locate"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd := m.update(msg)
	m.ensureRaster()
	return m, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		l := m.layout()
		m.l.SetSize(sidebarWidth-2, max(1, l.height-2))
		return m, nil

	case spinner.TickMsg:
		if !m.loading && !m.locating {
			return m, nil
		}
		var cmd tea.Cmd
		m.sp, cmd = m.sp.Update(msg)
		return m, cmd

	case countriesMsg:
		m.datasetLoaded(msg)
		return m, nil

	case locatedMsg:
		m.locating = false
		if msg.err != nil {
			m.log.Warn("locate failed", "error", msg.err)
			m.status = locate.Message(msg.err)
			return m, nil
		}
		c := m.idx.CountryAt(msg.p)
		ch, err := m.sm.Select(c, msg.p)
		m.apply("locate", ch, err)
		m.globe = m.globe.centerOn(msg.p)
		m.status = "Located: " + geom.FormatCoordinates(msg.p)
		return m, nil

	case frameMsg:
		x, y, inside, ok := m.co.take()
		if !ok || m.sm == nil {
			return m, nil
		}
		l := m.layout()
		p, onGlobe := geom.GeoPoint{}, false
		if inside {
			p, onGlobe = m.globe.cellToLonLat(x, y, l.mapW, l.mapH)
		}
		ch, err := m.sm.PointerAt(p, onGlobe)
		m.apply("pointer", ch, err)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}

	// Pass remaining messages to the list when visible
	if m.showList {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.sm == nil {
		if msg.String() == "q" {
			return m, tea.Quit
		}
		return m, nil
	}

	if m.gotoMode {
		switch msg.String() {
		case "esc":
			m.gotoMode = false
			m.ti.Blur()
			return m, nil
		case "enter":
			p, err := geom.ParsePoint(m.ti.Value())
			if err != nil {
				m.status = "go to: " + err.Error()
				return m, nil
			}
			m.gotoMode = false
			m.ti.Blur()
			ch, err := m.sm.Select(m.idx.CountryAt(p), p)
			m.apply("goto", ch, err)
			m.globe = m.globe.centerOn(p)
			m.status = "Went to " + geom.FormatCoordinates(p)
			return m, nil
		}
		var cmd tea.Cmd
		m.ti, cmd = m.ti.Update(msg)
		return m, cmd
	}

	// If list is visible, it owns navigation keys; while filtering it owns everything
	if m.showList {
		if m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		switch msg.String() {
		case "enter":
			if it, ok := m.l.SelectedItem().(countryItem); ok {
				m.selectCountry(it.c)
				m.showList = false
			}
			return m, nil
		case "esc", "tab":
			m.showList = false
			return m, nil
		case "up", "down", "pgup", "pgdown", "/", "home", "end":
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc":
		if m.showAttrs {
			m.showAttrs = false
			return m, nil
		}
		ch, err := m.sm.Escape()
		m.apply("escape", ch, err)
		if ch != 0 {
			m.status = hintHover
		}
	case "g":
		if m.locating {
			return m, nil
		}
		m.locating = true
		m.status = "Locating…"
		return m, tea.Batch(m.sp.Tick, locateCmd(m.opts.Locator, m.opts.LocateTimeout))
	case "/":
		m.gotoMode = true
		m.ti.SetValue("")
		cmd := m.ti.Focus()
		return m, cmd
	case "tab":
		m.showList = true
		l := m.layout()
		m.l.SetSize(sidebarWidth-2, max(1, l.height-2))
	case "a":
		m.showAttrs = !m.showAttrs
		if m.showAttrs {
			m.refreshAttrs()
		}
	case "f":
		if m.snap.HasPoint {
			m.globe = m.globe.centerOn(m.snap.AntipodePoint)
		} else {
			m.globe = m.globe.centerOn(geom.AntipodeOf(geom.Pt(m.globe.lon0, m.globe.lat0)))
		}
		return m.repointed()
	case "+", "=":
		m.globe = m.globe.zoomBy(1.25)
		m.status = fmt.Sprintf("zoom: %.2fx", m.globe.zoom)
		return m.repointed()
	case "-", "_":
		m.globe = m.globe.zoomBy(1 / 1.25)
		m.status = fmt.Sprintf("zoom: %.2fx", m.globe.zoom)
		return m.repointed()
	case "up":
		m.globe = m.globe.rotate(0, 10)
		return m.repointed()
	case "down":
		m.globe = m.globe.rotate(0, -10)
		return m.repointed()
	case "left":
		m.globe = m.globe.rotate(-15, 0)
		return m.repointed()
	case "right":
		m.globe = m.globe.rotate(15, 0)
		return m.repointed()
	case "h":
		m.helpVisible = !m.helpVisible
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if m.sm == nil {
		return m, nil
	}
	l := m.layout()
	cx, cy := msg.X-l.mapX, msg.Y-l.mapY
	inside := cx >= 0 && cy >= 0 && cx < l.mapW && cy < l.mapH

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.globe = m.globe.zoomBy(1.1)
		return m.repointed()
	case msg.Button == tea.MouseButtonWheelDown:
		m.globe = m.globe.zoomBy(1 / 1.1)
		return m.repointed()
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if !inside {
			return m, nil
		}
		// clicks off the disc hit empty space, not the ocean
		p, ok := m.globe.cellToLonLat(cx, cy, l.mapW, l.mapH)
		if !ok {
			return m, nil
		}
		ch, err := m.sm.Click(p)
		m.apply("click", ch, err)
		return m, nil
	case msg.Action == tea.MouseActionMotion:
		cmd := m.co.push(cx, cy, inside)
		return m, cmd
	}
	return m, nil
}

// repoint re-evaluates the last pointer position after the view moved
// under it.
func (m *Model) repoint() tea.Cmd {
	if m.sm == nil || m.snap.IsLocked {
		return nil
	}
	if !m.co.seen || m.co.pending {
		return nil
	}
	return m.co.push(m.co.x, m.co.y, m.co.inside)
}

func (m Model) repointed() (Model, tea.Cmd) {
	cmd := m.repoint()
	return m, cmd
}
