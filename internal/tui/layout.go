package tui

const (
	headerHeight = 1
	footerHeight = 2
	sidebarWidth = 28
	panelWidth   = 34
)

// layout is shared by View and the mouse handler so hit testing always
// matches what is on screen.
type layout struct {
	width, height int // content area below the header
	sidebar       int
	panel         int
	mapX, mapY    int
	mapW, mapH    int
}

func (m Model) layout() layout {
	l := layout{
		width:  max(10, m.width),
		height: max(4, m.height-headerHeight-footerHeight),
	}
	if m.showList {
		l.sidebar = sidebarWidth
		l.mapX = sidebarWidth + 1
	}
	l.panel = panelWidth
	if l.width-l.mapX-l.panel < 20 {
		l.panel = 0
	}
	l.mapY = headerHeight
	l.mapW = max(10, l.width-l.mapX-l.panel)
	l.mapH = l.height
	return l
}
