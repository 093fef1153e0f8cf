package geocode

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Provider is a named reverse-geocoding backend.
type Provider interface {
	Reverser
	Name() string
}

// CascadeReverser tries providers in order until one matches.
type CascadeReverser struct {
	providers []Provider
}

// NewCascade creates a CascadeReverser over the given providers.
func NewCascade(providers ...Provider) *CascadeReverser {
	return &CascadeReverser{providers: providers}
}

// Reverse implements Reverser. Provider errors are logged and skipped; an
// error is returned only when every provider failed.
func (c *CascadeReverser) Reverse(ctx context.Context, lat, lng float64) (*ReverseResult, error) {
	var lastErr error
	failed := 0
	for _, p := range c.providers {
		result, err := p.Reverse(ctx, lat, lng)
		if err != nil {
			zap.L().Debug("cascade: provider error, trying next",
				zap.String("provider", p.Name()),
				zap.Error(err),
			)
			lastErr = err
			failed++
			continue
		}
		if result != nil && result.Matched {
			return result, nil
		}
	}

	if len(c.providers) > 0 && failed == len(c.providers) {
		return nil, eris.Wrap(lastErr, "geocode: all providers failed")
	}

	// Every provider missed: unmatched, not an error.
	return &ReverseResult{Matched: false, Source: "cascade"}, nil
}
