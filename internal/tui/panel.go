package tui

import (
	"fmt"
	"strconv"
	"strings"

	"antipode/internal/geom"
)

const (
	hintHover  = "Hover to explore · Click to lock · Esc to unlock"
	hintLocked = "Click same country or press Esc to unlock"
)

// renderPanel is the FROM/TO card. Like the lock badge it stays hidden
// until there is a country to talk about.
func (m Model) renderPanel(w, h int) string {
	s := m.snap
	inner := max(8, w-4)
	var rows []string

	if s.Active() != nil || s.IsLocked {
		from := "Somewhere"
		if c := s.Active(); c != nil {
			from = c.DisplayName()
		}
		rows = append(rows,
			labelStyle.Render("FROM"),
			fromStyle.Render(truncate(from, inner)),
			dimStyle.Render(coords(s.HasPoint, s.ActivePoint)),
			"",
			labelStyle.Render("TO"),
		)
		if s.AntipodeCountry == nil {
			rows = append(rows, oceanStyle.Render("The Ocean"))
		} else {
			rows = append(rows, toStyle.Render(truncate(s.AntipodeCountry.DisplayName(), inner)))
		}
		rows = append(rows, dimStyle.Render(coords(s.HasPoint, s.AntipodePoint)))
		if s.HasPoint {
			rows = append(rows, "", dimStyle.Render(formatKm(geom.Distance(s.ActivePoint, s.AntipodePoint))+" along the surface"))
		}
		rows = append(rows, "")
	}

	if s.IsLocked {
		rows = append(rows, badgeStyle.Render("LOCKED"))
		rows = append(rows, dimStyle.Width(inner).Render(hintLocked))
	} else {
		rows = append(rows, dimStyle.Width(inner).Render(hintHover))
	}

	return boxStyle.Width(w - 2).MaxHeight(h).Render(strings.Join(rows, "\n"))
}

func coords(ok bool, p geom.GeoPoint) string {
	if !ok {
		return ""
	}
	return geom.FormatCoordinates(p)
}

// formatKm renders a distance as "20,015 km".
func formatKm(km float64) string {
	s := strconv.FormatInt(int64(km+0.5), 10)
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return fmt.Sprintf("%s km", b.String())
}
