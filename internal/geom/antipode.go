package geom

import (
	"fmt"
	"math"

	"github.com/paulmach/orb/geo"
)

// AntipodeOf returns the point diametrically opposite p.
//
// Longitude 0 maps to -180, never +180. Both ±180 map to 0, so the round
// trip of +180 comes back as -180, which is the same meridian.
func AntipodeOf(p GeoPoint) GeoPoint {
	lon := p.Lon + 180
	if p.Lon >= 0 {
		lon = p.Lon - 180
	}
	return GeoPoint{Lon: lon, Lat: -p.Lat}
}

// FormatCoordinates renders p as "12.3° N, 45.6° W".
func FormatCoordinates(p GeoPoint) string {
	ns := "N"
	if p.Lat < 0 {
		ns = "S"
	}
	ew := "E"
	if p.Lon < 0 {
		ew = "W"
	}
	return fmt.Sprintf("%.1f° %s, %.1f° %s", math.Abs(p.Lat), ns, math.Abs(p.Lon), ew)
}

// Distance is the great-circle distance between a and b in kilometers.
func Distance(a, b GeoPoint) float64 {
	return geo.Distance(a.Orb(), b.Orb()) / 1000
}
