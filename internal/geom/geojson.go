package geom

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// nameKeys are tried in order to find a display name in feature properties.
var nameKeys = []string{"name", "NAME", "ADMIN", "name_en", "NAME_EN", "admin"}

// LoadCountries reads a GeoJSON file of country boundaries.
func LoadCountries(path string) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	idx, err := ParseCountries(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return idx, nil
}

// ParseCountries builds an Index from a GeoJSON FeatureCollection or a
// single Feature. Only Polygon and MultiPolygon geometries are kept.
func ParseCountries(data []byte) (*Index, error) {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("parse geojson: %w", err)
	}
	var features []*geojson.Feature
	switch probe.Type {
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return nil, fmt.Errorf("parse feature collection: %w", err)
		}
		features = fc.Features
	case "Feature":
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return nil, fmt.Errorf("parse feature: %w", err)
		}
		features = []*geojson.Feature{f}
	default:
		return nil, fmt.Errorf("unsupported geojson type %q", probe.Type)
	}

	var countries []*Country
	for i, f := range features {
		var mp orb.MultiPolygon
		switch g := f.Geometry.(type) {
		case orb.Polygon:
			mp = orb.MultiPolygon{g}
		case orb.MultiPolygon:
			mp = g
		default:
			continue
		}
		if len(mp) == 0 {
			continue
		}
		countries = append(countries, NewCountry(featureName(f, i), mp, f.Properties))
	}
	if len(countries) == 0 {
		return nil, ErrNoCountries
	}
	return NewIndex(countries), nil
}

func featureName(f *geojson.Feature, i int) string {
	if s := firstString(f.Properties, nameKeys...); s != "" {
		return s
	}
	switch id := f.ID.(type) {
	case string:
		if id != "" {
			return id
		}
	case float64:
		return fmt.Sprintf("%g", id)
	}
	return fmt.Sprintf("feature %d", i+1)
}
