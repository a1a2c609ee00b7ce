package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// coalescer keeps only the newest pointer position and allows at most one
// pending frame tick, so hit testing runs at most once per frame however
// fast motion events arrive.
type coalescer struct {
	interval time.Duration
	pending  bool

	has    bool
	seen   bool
	x, y   int
	inside bool
}

// push records a position and returns a tick command when none is pending.
func (c *coalescer) push(x, y int, inside bool) tea.Cmd {
	c.x, c.y, c.inside = x, y, inside
	c.has, c.seen = true, true
	if c.pending {
		return nil
	}
	c.pending = true
	return tea.Tick(c.interval, func(time.Time) tea.Msg { return frameMsg{} })
}

// take consumes the latest position when the frame fires.
func (c *coalescer) take() (x, y int, inside, ok bool) {
	c.pending = false
	if !c.has {
		return 0, 0, false, false
	}
	c.has = false
	return c.x, c.y, c.inside, true
}
