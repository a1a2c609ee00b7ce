package geom

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/paulmach/orb/encoding/wkt"
)

// ParsePoint parses typed coordinates. Supported:
// POINT(lon lat) as WKT, or "lat, lon" / "lat lon" in decimal degrees.
func ParsePoint(s string) (GeoPoint, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return GeoPoint{}, errors.New("empty coordinates")
	}
	var p GeoPoint
	if strings.HasPrefix(strings.ToUpper(s), "POINT") {
		pt, err := wkt.UnmarshalPoint(strings.ToUpper(s))
		if err != nil {
			return GeoPoint{}, fmt.Errorf("wkt: %w", err)
		}
		p = FromOrb(pt)
	} else {
		parts := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' || r == ';' })
		if len(parts) != 2 {
			return GeoPoint{}, fmt.Errorf("expected \"lat, lon\", got %q", s)
		}
		lat, err1 := strconv.ParseFloat(parts[0], 64)
		lon, err2 := strconv.ParseFloat(parts[1], 64)
		if err1 != nil || err2 != nil {
			return GeoPoint{}, fmt.Errorf("invalid number in %q", s)
		}
		p = GeoPoint{Lon: lon, Lat: lat}
	}
	if !p.Valid() {
		return GeoPoint{}, fmt.Errorf("%s: %w", FormatCoordinates(p), ErrOutOfRange)
	}
	return p, nil
}
