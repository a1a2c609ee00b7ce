package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"antipode/internal/geom"
	"antipode/internal/state"
)

// raster caches the country under every micro pixel of the canvas. It only
// depends on the dataset and the view, so pointer motion never rebuilds it.
type raster struct {
	idx  *geom.Index
	g    globe
	w, h int // cells

	disc []bool
	land []*geom.Country
}

func buildRaster(idx *geom.Index, g globe, w, h int) *raster {
	wm, hm := w*2, h*4
	r := &raster{idx: idx, g: g, w: w, h: h, disc: make([]bool, wm*hm), land: make([]*geom.Country, wm*hm)}
	for my := 0; my < hm; my++ {
		// neighbours along a row are usually in the same country
		var hint *geom.Country
		for mx := 0; mx < wm; mx++ {
			p, ok := g.microToLonLat(float64(mx)+0.5, float64(my)+0.5, w, h)
			if !ok {
				continue
			}
			i := my*wm + mx
			r.disc[i] = true
			c := idx.CountryAtHint(p, hint)
			r.land[i] = c
			if c != nil {
				hint = c
			}
		}
	}
	return r
}

func (r *raster) matches(idx *geom.Index, g globe, w, h int) bool {
	return r != nil && r.idx == idx && r.g == g && r.w == w && r.h == h
}

// at returns the country at a micro pixel and whether it lies on the disc.
func (r *raster) at(mx, my int) (*geom.Country, bool) {
	wm, hm := r.w*2, r.h*4
	if mx < 0 || my < 0 || mx >= wm || my >= hm {
		return nil, false
	}
	i := my*wm + mx
	return r.land[i], r.disc[i]
}

// marker is an overlay glyph pinned to a geographic point.
type marker struct {
	p     geom.GeoPoint
	glyph string
	label string
	style lipgloss.Style
}

// buildMarkers runs only when the antipode country or the lock flag changed.
// Markers exist only while locked: the pointer marks the hovered point.
func buildMarkers(s state.Snapshot) []marker {
	if !s.IsLocked || !s.HasPoint {
		return nil
	}
	to := "Open Ocean"
	if s.AntipodeCountry != nil {
		to = s.AntipodeCountry.DisplayName()
	}
	return []marker{
		{p: s.ActivePoint, glyph: "●", style: fromStyle},
		{p: s.AntipodePoint, glyph: "◆", label: " Here! " + to, style: toStyle},
	}
}

func (m Model) renderGlobe(w, h int) string {
	r := m.raster
	if !r.matches(m.idx, m.globe, w, h) {
		r = buildRaster(m.idx, m.globe, w, h)
	}
	b := newBrailleBuf(w, h)
	m.drawGraticule(b, w, h)

	active := m.snap.Active()
	var antipode *geom.Country
	if m.snap.IsLocked {
		antipode = m.snap.AntipodeCountry
	}

	for my := 0; my < h*4; my++ {
		for mx := 0; mx < w*2; mx++ {
			c, on := r.at(mx, my)
			if !on {
				continue
			}
			if !onDisc(r, mx-1, my) || !onDisc(r, mx+1, my) || !onDisc(r, mx, my-1) || !onDisc(r, mx, my+1) {
				b.setPixel(mx, my, inkLimb)
			}
			if c == nil || isBorder(r, c, mx, my) {
				continue
			}
			k := inkLand
			switch c {
			case active:
				k = inkActive
			case antipode:
				k = inkAntipode
			}
			b.setPixel(mx, my, k)
		}
	}

	over := m.overlay(w, h)
	lines := make([]string, h)
	for cy := 0; cy < h; cy++ {
		var sb, run strings.Builder
		runInk := inkNone
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if st, ok := inkStyles[runInk]; ok {
				sb.WriteString(st.Render(run.String()))
			} else {
				sb.WriteString(run.String())
			}
			run.Reset()
		}
		for cx := 0; cx < w; cx++ {
			if o, ok := over[[2]int{cx, cy}]; ok {
				flush()
				sb.WriteString(o)
				continue
			}
			if k := b.ink[cy][cx]; k != runInk {
				flush()
				runInk = k
			}
			run.WriteRune(b.glyph(cx, cy))
		}
		flush()
		lines[cy] = sb.String()
	}
	return strings.Join(lines, "\n")
}

func onDisc(r *raster, mx, my int) bool {
	_, on := r.at(mx, my)
	return on
}

// isBorder leaves a one-dot gap where c meets another country so national
// borders stay visible in the fill.
func isBorder(r *raster, c *geom.Country, mx, my int) bool {
	for _, d := range [2][2]int{{1, 0}, {0, 1}} {
		n, on := r.at(mx+d[0], my+d[1])
		if on && n != nil && n != c {
			return true
		}
	}
	return false
}

// drawGraticule draws meridians and parallels every 30 degrees.
func (m Model) drawGraticule(b *brailleBuf, w, h int) {
	const step = 2.0
	trace := func(pt func(t float64) geom.GeoPoint, from, to float64) {
		var prev [2]int
		havePrev := false
		for t := from; t <= to; t += step {
			mx, my, ok := m.globe.screenXYMicro(pt(t), w, h)
			if !ok {
				havePrev = false
				continue
			}
			if havePrev {
				b.drawLineMicro(prev[0], prev[1], mx, my, inkGrid)
			}
			prev, havePrev = [2]int{mx, my}, true
		}
	}
	for lon := -180.0; lon < 180; lon += 30 {
		trace(func(t float64) geom.GeoPoint { return geom.Pt(lon, t) }, -90, 90)
	}
	for lat := -60.0; lat <= 60; lat += 30 {
		trace(func(t float64) geom.GeoPoint { return geom.Pt(t, lat) }, -180, 180)
	}
}

// overlay renders markers into styled cells keyed by cell position.
func (m Model) overlay(w, h int) map[[2]int]string {
	out := make(map[[2]int]string)
	for _, mk := range m.markers {
		mx, my, ok := m.globe.screenXYMicro(mk.p, w, h)
		if !ok {
			continue
		}
		cx, cy := mx/2, my/4
		if cx < 0 || cy < 0 || cx >= w || cy >= h {
			continue
		}
		out[[2]int{cx, cy}] = mk.style.Render(mk.glyph)
		for i, r := range []rune(mk.label) {
			x := cx + 1 + i
			if x >= w {
				break
			}
			out[[2]int{x, cy}] = mk.style.Render(string(r))
		}
	}
	return out
}
