package tui

import (
	"encoding/json"
	"fmt"
	"sort"

	table "github.com/charmbracelet/bubbles/table"
	"github.com/paulmach/orb/geojson"

	"antipode/internal/geom"
)

// refreshAttrs rebuilds the table from the properties of the active country
// and its antipode, one row per property key.
func (m *Model) refreshAttrs() {
	from := m.snap.Active()
	to := m.snap.AntipodeCountry
	cols, rows := buildAttributes(from, to)
	if len(rows) == 0 {
		m.showAttrs = false
		m.status = "no attributes for the current countries"
		return
	}
	// Avoid transient mismatch: clear rows, set columns, then set rows
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(cols)
	m.tbl.SetRows(rows)
}

func buildAttributes(from, to *geom.Country) ([]table.Column, []table.Row) {
	keys := map[string]bool{}
	for _, c := range []*geom.Country{from, to} {
		if c == nil {
			continue
		}
		for k := range c.Properties {
			keys[k] = true
		}
	}
	order := make([]string, 0, len(keys))
	for k := range keys {
		order = append(order, k)
	}
	sort.Strings(order)

	const maxColW = 24
	cols := []table.Column{
		{Title: "property", Width: 12},
		{Title: title(from, "FROM"), Width: maxColW},
		{Title: title(to, "TO"), Width: maxColW},
	}
	rows := make([]table.Row, 0, len(order))
	for _, k := range order {
		if w := len(k) + 2; w > cols[0].Width {
			cols[0].Width = min(w, maxColW)
		}
		rows = append(rows, table.Row{k, propValue(from, k), propValue(to, k)})
	}
	return cols, rows
}

func title(c *geom.Country, side string) string {
	if c == nil {
		return side + ": ocean"
	}
	return side + ": " + c.DisplayName()
}

func propValue(c *geom.Country, key string) string {
	if c == nil {
		return ""
	}
	return formatProp(c.Properties, key)
}

func formatProp(props geojson.Properties, key string) string {
	switch t := props[key].(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return fmt.Sprintf("%g", t)
	case bool:
		if t {
			return "true"
		}
		return "false"
	default:
		bs, _ := json.Marshal(t)
		return string(bs)
	}
}
