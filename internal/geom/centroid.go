package geom

import (
	"math"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// RepresentativePoint returns an interior point of mp: the area centroid of
// its largest polygon when that lies inside, otherwise the middle of the
// widest interior span on the centroid's latitude.
func RepresentativePoint(mp orb.MultiPolygon) GeoPoint {
	var largest orb.Polygon
	best := -1.0
	for _, poly := range mp {
		if len(poly) == 0 || len(poly[0]) < 3 {
			continue
		}
		if a := math.Abs(planar.Area(poly)); a > best {
			best, largest = a, poly
		}
	}
	if largest == nil {
		return GeoPoint{}
	}
	c, _ := planar.CentroidArea(largest)
	if planar.PolygonContains(largest, c) {
		return FromOrb(c)
	}
	b := largest.Bound()
	for _, lat := range []float64{c.Lat(), b.Center().Lat()} {
		if lon, ok := widestSpan(largest, lat); ok {
			return GeoPoint{Lon: lon, Lat: lat}
		}
	}
	return FromOrb(b.Center())
}

// widestSpan intersects poly with the parallel at lat (even-odd, holes
// included) and returns the midpoint longitude of the widest inside span.
func widestSpan(poly orb.Polygon, lat float64) (float64, bool) {
	var xs []float64
	for _, ring := range poly {
		n := len(ring)
		for i := 0; i < n; i++ {
			a, b := ring[i], ring[(i+1)%n]
			if a.Lat() == b.Lat() {
				continue
			}
			if (lat >= a.Lat() && lat < b.Lat()) || (lat >= b.Lat() && lat < a.Lat()) {
				t := (lat - a.Lat()) / (b.Lat() - a.Lat())
				xs = append(xs, a.Lon()+t*(b.Lon()-a.Lon()))
			}
		}
	}
	if len(xs) < 2 {
		return 0, false
	}
	sort.Float64s(xs)
	width, mid := 0.0, 0.0
	for i := 0; i+1 < len(xs); i += 2 {
		if w := xs[i+1] - xs[i]; w > width {
			width, mid = w, (xs[i]+xs[i+1])/2
		}
	}
	return mid, width > 0
}
