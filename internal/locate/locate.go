// Package locate answers "where am I" for the locate-me control. A request
// is bounded by a timeout, is never retried, and fails with one of the
// sentinel errors below.
package locate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"antipode/internal/geom"
)

var (
	ErrUnavailable = errors.New("geolocation unavailable")
	ErrDenied      = errors.New("location request failed")
	ErrTimeout     = errors.New("location request timed out")
)

type Locator interface {
	Locate(ctx context.Context) (geom.GeoPoint, error)
}

// Unavailable is used when nothing is configured.
type Unavailable struct{}

func (Unavailable) Locate(context.Context) (geom.GeoPoint, error) {
	return geom.GeoPoint{}, ErrUnavailable
}

// Fixed always answers with Point (ANTIPODE_HOME).
type Fixed struct {
	Point geom.GeoPoint
}

func (f Fixed) Locate(ctx context.Context) (geom.GeoPoint, error) {
	if err := ctx.Err(); err != nil {
		return geom.GeoPoint{}, err
	}
	return f.Point, nil
}

// WithTimeout runs one request bounded by d and maps every failure onto
// ErrUnavailable, ErrDenied or ErrTimeout.
func WithTimeout(ctx context.Context, l Locator, d time.Duration) (geom.GeoPoint, error) {
	ctx, cancel := context.WithTimeout(ctx, d)
	defer cancel()

	p, err := l.Locate(ctx)
	switch {
	case err == nil:
		if !p.Valid() {
			return geom.GeoPoint{}, fmt.Errorf("%w: %s", ErrDenied, geom.FormatCoordinates(p))
		}
		return p, nil
	case errors.Is(err, ErrUnavailable), errors.Is(err, ErrDenied), errors.Is(err, ErrTimeout):
		return geom.GeoPoint{}, err
	case errors.Is(err, context.DeadlineExceeded), errors.Is(ctx.Err(), context.DeadlineExceeded):
		return geom.GeoPoint{}, fmt.Errorf("%w after %s", ErrTimeout, d)
	default:
		return geom.GeoPoint{}, fmt.Errorf("%w: %v", ErrDenied, err)
	}
}

// Message is the one-line text shown to the user for a failed request.
func Message(err error) string {
	switch {
	case errors.Is(err, ErrUnavailable):
		return "Geolocation isn't available here. Try clicking directly on a country!"
	case errors.Is(err, ErrTimeout):
		return "Locating timed out. Try clicking on your country instead!"
	default:
		return "Could not get your location. Try clicking on your country instead!"
	}
}

// New picks a locator: a fixed home point wins, then a GeoIP database,
// otherwise Unavailable. The returned close func is never nil.
func New(home, geoIPDB, geoIPAddr, echoURL string) (Locator, func() error, error) {
	nop := func() error { return nil }
	if home != "" {
		p, err := geom.ParsePoint(home)
		if err != nil {
			return nil, nop, fmt.Errorf("ANTIPODE_HOME: %w", err)
		}
		return Fixed{Point: p}, nop, nil
	}
	if geoIPDB != "" {
		g, err := OpenGeoIP(geoIPDB, geoIPAddr, echoURL)
		if err != nil {
			return nil, nop, err
		}
		return g, g.Close, nil
	}
	return Unavailable{}, nop, nil
}
