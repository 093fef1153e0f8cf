// Package geocode converts a latitude/longitude pair into a street address via
// Google Geocoding (primary) and PostGIS TIGER data (optional).
package geocode

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

// Reverser turns a coordinate pair into a human-readable address.
type Reverser interface {
	// Reverse looks up the address nearest to lat/lng. An unmatched lookup is
	// not an error: it returns a result with Matched=false.
	Reverse(ctx context.Context, lat, lng float64) (*ReverseResult, error)
}

// ReverseResult holds the reverse-geocoding output for a coordinate pair.
type ReverseResult struct {
	Address string `json:"address"`
	Source  string `json:"source"` // "google", "tiger" or "cascade"
	Matched bool   `json:"matched"`
}

// Option configures the Google reverser.
type Option func(*GoogleReverser)

// WithBaseURL overrides the Geocoding API endpoint (for testing).
func WithBaseURL(u string) Option {
	return func(g *GoogleReverser) {
		if u != "" {
			g.baseURL = u
		}
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(g *GoogleReverser) {
		g.httpClient = hc
	}
}

// WithRateLimit sets the requests-per-second limit for Google calls.
func WithRateLimit(rps float64) Option {
	return func(g *GoogleReverser) {
		if rps <= 0 {
			return
		}
		burst := int(rps)
		if burst < 1 {
			burst = 1
		}
		g.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// NewGoogle creates a reverser backed by the Google Geocoding API.
func NewGoogle(apiKey string, opts ...Option) *GoogleReverser {
	g := &GoogleReverser{
		apiKey:     apiKey,
		baseURL:    googleGeocodeURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		limiter:    rate.NewLimiter(10, 10),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// formatDegrees renders a coordinate with the shortest decimal text that
// round-trips, e.g. 37.7749 rather than 37.774900.
func formatDegrees(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
