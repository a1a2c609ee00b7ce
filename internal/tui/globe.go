package tui

import (
	"math"

	"antipode/internal/geom"
)

const (
	minZoom = 0.5
	maxZoom = 8.0
)

// globe is an orthographic view of the earth centred on (lon0, lat0).
// Screen space is the braille micro-grid: 2x4 dots per cell, which makes
// dots roughly square on common terminal fonts.
type globe struct {
	lon0, lat0 float64
	zoom       float64
}

func newGlobe() globe { return globe{lon0: 0, lat0: 20, zoom: 1} }

// radius is the disc radius in micro pixels for a w x h cell canvas.
func (g globe) radius(w, h int) float64 {
	return 0.47 * g.zoom * float64(min(w*2, h*4))
}

// project maps p onto the unit disc. ok is false on the far hemisphere.
func (g globe) project(p geom.GeoPoint) (x, y float64, ok bool) {
	phi, lam := rad(p.Lat), rad(p.Lon-g.lon0)
	phi0 := rad(g.lat0)
	cosc := math.Sin(phi0)*math.Sin(phi) + math.Cos(phi0)*math.Cos(phi)*math.Cos(lam)
	if cosc < 0 {
		return 0, 0, false
	}
	x = math.Cos(phi) * math.Sin(lam)
	y = math.Cos(phi0)*math.Sin(phi) - math.Sin(phi0)*math.Cos(phi)*math.Cos(lam)
	return x, y, true
}

// unproject is the inverse of project. ok is false off the disc.
func (g globe) unproject(x, y float64) (geom.GeoPoint, bool) {
	rho := math.Hypot(x, y)
	if rho > 1 {
		return geom.GeoPoint{}, false
	}
	if rho == 0 {
		return geom.Pt(g.lon0, g.lat0), true
	}
	c := math.Asin(rho)
	phi0 := rad(g.lat0)
	sinc, cosc := math.Sin(c), math.Cos(c)
	lat := math.Asin(clamp(cosc*math.Sin(phi0)+y*sinc*math.Cos(phi0)/rho, -1, 1))
	lon := rad(g.lon0) + math.Atan2(x*sinc, rho*cosc*math.Cos(phi0)-y*sinc*math.Sin(phi0))
	return geom.Pt(wrapLon(deg(lon)), deg(lat)), true
}

// microToLonLat maps a micro pixel centre of a w x h cell canvas.
func (g globe) microToLonLat(mx, my float64, w, h int) (geom.GeoPoint, bool) {
	r := g.radius(w, h)
	if r <= 0 {
		return geom.GeoPoint{}, false
	}
	return g.unproject((mx-float64(w))/r, -(my-float64(h*2))/r)
}

// cellToLonLat converts a canvas cell to the point under its centre.
func (g globe) cellToLonLat(cx, cy, w, h int) (geom.GeoPoint, bool) {
	if cx < 0 || cy < 0 || cx >= w || cy >= h {
		return geom.GeoPoint{}, false
	}
	return g.microToLonLat(float64(cx*2+1), float64(cy*4+2), w, h)
}

// screenXYMicro projects p to micro pixel coordinates.
func (g globe) screenXYMicro(p geom.GeoPoint, w, h int) (int, int, bool) {
	x, y, ok := g.project(p)
	if !ok {
		return 0, 0, false
	}
	r := g.radius(w, h)
	mx := int(math.Floor(float64(w) + x*r))
	my := int(math.Floor(float64(h*2) - y*r))
	return mx, my, true
}

// rotate pans the view; the step shrinks as the zoom grows.
func (g globe) rotate(dlon, dlat float64) globe {
	g.lon0 = wrapLon(g.lon0 + dlon/g.zoom)
	g.lat0 = clamp(g.lat0+dlat/g.zoom, -90, 90)
	return g
}

func (g globe) zoomBy(f float64) globe {
	g.zoom = clamp(g.zoom*f, minZoom, maxZoom)
	return g
}

func (g globe) centerOn(p geom.GeoPoint) globe {
	g.lon0, g.lat0 = p.Lon, p.Lat
	return g
}

func rad(d float64) float64 { return d * math.Pi / 180 }
func deg(r float64) float64 { return r * 180 / math.Pi }

// wrapLon normalises to [-180, 180).
func wrapLon(lon float64) float64 {
	lon = math.Mod(lon+180, 360)
	if lon < 0 {
		lon += 360
	}
	return lon - 180
}
