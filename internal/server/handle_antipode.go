package server

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"antipode/internal/geom"
)

type pointJSON struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func toJSON(p geom.GeoPoint) pointJSON { return pointJSON{Lat: p.Lat, Lon: p.Lon} }

type antipodeResponse struct {
	Point           pointJSON `json:"point"`
	Antipode        pointJSON `json:"antipode"`
	Country         *string   `json:"country"`
	AntipodeCountry *string   `json:"antipodeCountry"`
	Label           string    `json:"label"`
	AntipodeLabel   string    `json:"antipodeLabel"`
	DistanceKm      float64   `json:"distanceKm"`
}

func nameOf(c *geom.Country) *string {
	if c == nil {
		return nil
	}
	n := c.DisplayName()
	return &n
}

func describe(idx *geom.Index, p geom.GeoPoint) antipodeResponse {
	ap := geom.AntipodeOf(p)
	return antipodeResponse{
		Point:           toJSON(p),
		Antipode:        toJSON(ap),
		Country:         nameOf(idx.CountryAt(p)),
		AntipodeCountry: nameOf(idx.CountryAt(ap)),
		Label:           geom.FormatCoordinates(p),
		AntipodeLabel:   geom.FormatCoordinates(ap),
		DistanceKm:      math.Round(geom.Distance(p, ap)),
	}
}

// pointFromQuery accepts either lat+lon or a single "point" in any form
// geom.ParsePoint understands.
func pointFromQuery(r *http.Request) (geom.GeoPoint, string) {
	q := r.URL.Query()
	if s := q.Get("point"); s != "" {
		p, err := geom.ParsePoint(s)
		if err != nil {
			return geom.GeoPoint{}, err.Error()
		}
		return p, ""
	}

	lat, err := strconv.ParseFloat(q.Get("lat"), 64)
	if err != nil {
		return geom.GeoPoint{}, "lat must be a number"
	}
	lon, err := strconv.ParseFloat(q.Get("lon"), 64)
	if err != nil {
		return geom.GeoPoint{}, "lon must be a number"
	}
	p := geom.Pt(lon, lat)
	if !p.Valid() {
		return geom.GeoPoint{}, "coordinates out of range"
	}
	return p, ""
}

func handleAntipode(logger *slog.Logger, idx *geom.Index) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, msg := pointFromQuery(r)
		if msg != "" {
			writeError(w, http.StatusBadRequest, msg)
			return
		}
		resp := describe(idx, p)
		logger.Debug("antipode", "point", resp.Label, "antipode", resp.AntipodeLabel)
		writeJSON(w, http.StatusOK, resp)
	}
}

type countryJSON struct {
	Name     string    `json:"name"`
	ISO      string    `json:"iso,omitempty"`
	Centroid pointJSON `json:"centroid"`
}

func handleCountries(idx *geom.Index) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cs := idx.Countries()
		out := make([]countryJSON, 0, len(cs))
		for _, c := range cs {
			out = append(out, countryJSON{Name: c.DisplayName(), ISO: c.ISO, Centroid: toJSON(c.Centroid())})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// handleCountry answers for the country's representative point, the same
// point the UI uses when a country is picked from the list.
func handleCountry(idx *geom.Index) http.HandlerFunc {
	type response struct {
		countryJSON
		Antipode antipodeResponse `json:"antipode"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := idx.ByName(chi.URLParam(r, "name"))
		if !ok {
			writeError(w, http.StatusNotFound, "country not found")
			return
		}
		writeJSON(w, http.StatusOK, response{
			countryJSON: countryJSON{Name: c.DisplayName(), ISO: c.ISO, Centroid: toJSON(c.Centroid())},
			Antipode:    describe(idx, c.Centroid()),
		})
	}
}

func handleHealth(idx *geom.Index) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "countries": idx.Len()})
	}
}
