// Package geolocation provides the "current position" capability used to
// pre-fill a draft's coordinates.
package geolocation

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"

	"github.com/Mayankdev0923/Energon/internal/config"
)

// ErrUnavailable is returned by locators that cannot produce a fix at all.
var ErrUnavailable = errors.New("geolocation: not supported")

// Position is a single latitude/longitude fix in decimal degrees.
type Position struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Locator produces the device's current position.
type Locator interface {
	// Available reports whether the capability exists. It must be checked
	// before CurrentPosition is called.
	Available() bool
	// CurrentPosition returns one fix.
	CurrentPosition(ctx context.Context) (Position, error)
}

// Unsupported is a Locator for environments with no position source.
type Unsupported struct{}

// Available implements Locator.
func (Unsupported) Available() bool { return false }

// CurrentPosition implements Locator.
func (Unsupported) CurrentPosition(context.Context) (Position, error) {
	return Position{}, ErrUnavailable
}

// Static always reports the same configured fix.
type Static struct {
	Pos Position
}

// Available implements Locator.
func (Static) Available() bool { return true }

// CurrentPosition implements Locator.
func (s Static) CurrentPosition(ctx context.Context) (Position, error) {
	if err := ctx.Err(); err != nil {
		return Position{}, eris.Wrap(err, "geolocation: static")
	}
	return s.Pos, nil
}

// IPLookup locates the host by its public IP through an ip-api.com
// compatible JSON endpoint.
type IPLookup struct {
	url  string
	http *http.Client
}

// NewIPLookup creates an IPLookup against url. A nil client gets a 10s timeout.
func NewIPLookup(url string, hc *http.Client) *IPLookup {
	if hc == nil {
		hc = &http.Client{Timeout: 10 * time.Second}
	}
	return &IPLookup{url: url, http: hc}
}

// Available implements Locator.
func (l *IPLookup) Available() bool { return l.url != "" }

type ipAPIResponse struct {
	Status  string  `json:"status"`
	Message string  `json:"message"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// CurrentPosition implements Locator.
func (l *IPLookup) CurrentPosition(ctx context.Context) (Position, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return Position{}, eris.Wrap(err, "geolocation: build request")
	}

	resp, err := l.http.Do(req)
	if err != nil {
		return Position{}, eris.Wrap(err, "geolocation: request")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return Position{}, eris.Errorf("geolocation: lookup returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Position{}, eris.Wrap(err, "geolocation: read body")
	}

	var r ipAPIResponse
	if err := json.Unmarshal(body, &r); err != nil {
		return Position{}, eris.Wrap(err, "geolocation: parse response")
	}
	if r.Status != "success" {
		return Position{}, eris.Errorf("geolocation: lookup failed: %s", r.Message)
	}

	return Position{Latitude: r.Lat, Longitude: r.Lon}, nil
}

// FromConfig builds the Locator selected by cfg.Provider.
func FromConfig(cfg config.GeolocationConfig, hc *http.Client) Locator {
	switch cfg.Provider {
	case "static":
		return Static{Pos: Position{Latitude: cfg.Latitude, Longitude: cfg.Longitude}}
	case "ip":
		return NewIPLookup(cfg.IPURL, hc)
	default:
		return Unsupported{}
	}
}
