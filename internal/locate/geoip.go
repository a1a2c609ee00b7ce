package locate

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/oschwald/geoip2-golang"

	"antipode/internal/geom"
)

// GeoIP resolves the public address of this machine against a MaxMind
// City database.
type GeoIP struct {
	db      *geoip2.Reader
	addr    net.IP
	echoURL string
	client  *http.Client
}

// OpenGeoIP opens the database at path. addr pins the address to look up;
// when empty the public address is asked from echoURL on every request.
func OpenGeoIP(path, addr, echoURL string) (*GeoIP, error) {
	g := &GeoIP{echoURL: echoURL, client: &http.Client{Timeout: 30 * time.Second}}
	if addr != "" {
		if g.addr = net.ParseIP(addr); g.addr == nil {
			return nil, fmt.Errorf("ANTIPODE_GEOIP_ADDR: invalid address %q", addr)
		}
	}
	db, err := geoip2.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open geoip database: %w", err)
	}
	g.db = db
	return g, nil
}

func (g *GeoIP) Close() error {
	if g.db == nil {
		return nil
	}
	return g.db.Close()
}

func (g *GeoIP) Locate(ctx context.Context) (geom.GeoPoint, error) {
	ip := g.addr
	if ip == nil {
		var err error
		if ip, err = g.publicIP(ctx); err != nil {
			return geom.GeoPoint{}, err
		}
	}
	rec, err := g.db.City(ip)
	if err != nil {
		return geom.GeoPoint{}, fmt.Errorf("%w: geoip lookup %s: %v", ErrDenied, ip, err)
	}
	loc := rec.Location
	if loc.Latitude == 0 && loc.Longitude == 0 && loc.AccuracyRadius == 0 {
		return geom.GeoPoint{}, fmt.Errorf("%w: no location for %s", ErrDenied, ip)
	}
	return geom.Pt(loc.Longitude, loc.Latitude), nil
}

// publicIP asks an echo service that answers with the caller's address as
// plain text.
func (g *GeoIP) publicIP(ctx context.Context) (net.IP, error) {
	if g.echoURL == "" {
		return nil, fmt.Errorf("%w: no address and no echo service", ErrUnavailable)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.echoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDenied, err)
	}
	resp, err := g.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", ErrDenied, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: echo service answered %s", ErrDenied, resp.Status)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 64))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDenied, err)
	}
	ip := net.ParseIP(strings.TrimSpace(string(body)))
	if ip == nil {
		return nil, fmt.Errorf("%w: echo service answered %q", ErrDenied, body)
	}
	return ip, nil
}
