package geom

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
)

// Country is an immutable named boundary. Identity is pointer identity:
// the same *Country is handed out for the whole session.
type Country struct {
	Name       string
	ISO        string
	Geometry   orb.MultiPolygon
	Properties geojson.Properties

	bound orb.Bound
	rep   GeoPoint
}

// NewCountry precomputes the bounding box and representative point of mp.
func NewCountry(name string, mp orb.MultiPolygon, props geojson.Properties) *Country {
	c := &Country{Name: name, Geometry: mp, Properties: props}
	if props != nil {
		c.ISO = firstString(props, "ISO_A3", "iso_a3", "ISO_A2", "iso_a2", "iso")
	}
	c.bound = mp.Bound()
	c.rep = RepresentativePoint(mp)
	return c
}

// Contains reports whether p lies inside the boundary (holes excluded).
func (c *Country) Contains(p GeoPoint) bool {
	if c == nil {
		return false
	}
	pt := p.Orb()
	if !c.bound.Contains(pt) {
		return false
	}
	return planar.MultiPolygonContains(c.Geometry, pt)
}

func (c *Country) Bound() orb.Bound { return c.bound }

// Centroid returns a representative interior point, never an edge point.
func (c *Country) Centroid() GeoPoint { return c.rep }

// DisplayName falls back to "?" for unnamed features.
func (c *Country) DisplayName() string {
	if c == nil {
		return ""
	}
	if c.Name == "" {
		return "?"
	}
	return c.Name
}

func firstString(props geojson.Properties, keys ...string) string {
	for _, k := range keys {
		if s, ok := props[k].(string); ok && s != "" && s != "-99" {
			return s
		}
	}
	return ""
}
