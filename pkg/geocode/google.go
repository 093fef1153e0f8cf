package geocode

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

const googleGeocodeURL = "https://maps.googleapis.com/maps/api/geocode/json"

// googleGeocodeResponse is the JSON response from the Google Geocoding API.
type googleGeocodeResponse struct {
	Results      []googleResult `json:"results"`
	Status       string         `json:"status"`
	ErrorMessage string         `json:"error_message"`
}

type googleResult struct {
	FormattedAddress string `json:"formatted_address"`
}

// GoogleReverser reverse-geocodes through the Google Geocoding API.
type GoogleReverser struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// Name identifies the provider in logs and results.
func (g *GoogleReverser) Name() string { return "google" }

// Reverse implements Reverser.
func (g *GoogleReverser) Reverse(ctx context.Context, lat, lng float64) (*ReverseResult, error) {
	if g.apiKey == "" {
		return nil, eris.New("geocode: google api key not configured")
	}

	if err := g.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "geocode: google rate limit")
	}

	params := url.Values{
		"latlng": {formatDegrees(lat) + "," + formatDegrees(lng)},
		"key":    {g.apiKey},
	}

	reqURL := g.baseURL + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: google build request")
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: google request")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("geocode: google returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: google read body")
	}

	var googleResp googleGeocodeResponse
	if err := json.Unmarshal(body, &googleResp); err != nil {
		return nil, eris.Wrap(err, "geocode: google parse response")
	}

	// Only the first result matters; status is consulted when there is none.
	if len(googleResp.Results) > 0 {
		return &ReverseResult{
			Address: googleResp.Results[0].FormattedAddress,
			Source:  "google",
			Matched: true,
		}, nil
	}

	switch googleResp.Status {
	case "", "OK", "ZERO_RESULTS":
		return &ReverseResult{Matched: false, Source: "google"}, nil
	default:
		if googleResp.ErrorMessage != "" {
			return nil, eris.Errorf("geocode: google status %s: %s", googleResp.Status, googleResp.ErrorMessage)
		}
		return nil, eris.Errorf("geocode: google status %s", googleResp.Status)
	}
}
