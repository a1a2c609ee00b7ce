package tui

import (
	"fmt"

	list "github.com/charmbracelet/bubbles/list"

	"antipode/internal/geom"
)

type countryItem struct {
	c *geom.Country
}

func (i countryItem) Title() string { return i.c.DisplayName() }

func (i countryItem) Description() string {
	desc := geom.FormatCoordinates(i.c.Centroid())
	if i.c.ISO != "" {
		desc = fmt.Sprintf("%s · %s", i.c.ISO, desc)
	}
	return desc
}

func (i countryItem) FilterValue() string { return i.c.DisplayName() + " " + i.c.ISO }

func (m *Model) refreshCountries() {
	cs := m.idx.Countries()
	items := make([]list.Item, 0, len(cs))
	for _, c := range cs {
		items = append(items, countryItem{c: c})
	}
	m.l.SetItems(items)
}

// selectCountry locks on the country's representative point, the same
// path a geolocation result takes.
func (m *Model) selectCountry(c *geom.Country) {
	p := c.Centroid()
	ch, err := m.sm.Select(c, p)
	m.apply("select", ch, err)
	m.globe = m.globe.centerOn(p)
	m.status = "Selected " + c.DisplayName()
}
