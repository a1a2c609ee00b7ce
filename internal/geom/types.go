package geom

import (
	"errors"

	"github.com/paulmach/orb"
)

var (
	ErrOutOfRange  = errors.New("coordinate out of range")
	ErrNoCountries = errors.New("no country polygons found")
)

// GeoPoint is a longitude/latitude pair in degrees (WGS84).
type GeoPoint struct {
	Lon float64
	Lat float64
}

// Pt is shorthand for GeoPoint{Lon: lon, Lat: lat}.
func Pt(lon, lat float64) GeoPoint { return GeoPoint{Lon: lon, Lat: lat} }

// Valid reports whether lon is in [-180, 180] and lat in [-90, 90].
func (p GeoPoint) Valid() bool {
	return p.Lon >= -180 && p.Lon <= 180 && p.Lat >= -90 && p.Lat <= 90
}

func (p GeoPoint) Orb() orb.Point { return orb.Point{p.Lon, p.Lat} }

func FromOrb(pt orb.Point) GeoPoint { return GeoPoint{Lon: pt.Lon(), Lat: pt.Lat()} }
