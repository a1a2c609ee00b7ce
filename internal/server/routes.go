package server

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"antipode/internal/geom"
)

func addRoutes(r chi.Router, logger *slog.Logger, idx *geom.Index) {
	r.Get("/healthz", handleHealth(idx))
	r.Get("/antipode", handleAntipode(logger, idx))
	r.Get("/countries", handleCountries(idx))
	r.Get("/countries/{name}", handleCountry(idx))
}
