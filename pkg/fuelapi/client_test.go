package fuelapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mayankdev0923/Energon/internal/model"
)

func testPayload() model.LocationPayload {
	return model.LocationPayload{
		Name:         "Jane Doe",
		Address:      "123 Main St",
		Coordinates:  model.Coordinates{Lat: "10", Lng: "20"}.LngLat(),
		Price:        3.49,
		Availability: 12,
		Rating:       4.5,
		Email:        "jane@example.com",
	}
}

func TestPushFuelLocation_Success(t *testing.T) {
	var gotMethod, gotPath, gotContentType string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"message":"created"}`)
	}))
	defer srv.Close()

	err := NewClient(srv.URL+"/").PushFuelLocation(context.Background(), testPayload())
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/api/pushFuelLocation", gotPath)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "Jane Doe", gotBody["name"])
	assert.Equal(t, "jane@example.com", gotBody["email"])
	assert.Equal(t, []any{"20", "10"}, gotBody["coordinates"])
	assert.InDelta(t, 3.49, gotBody["price"], 0.0001)
	assert.InDelta(t, 12, gotBody["availability"], 0.0001)
	assert.InDelta(t, 4.5, gotBody["rating"], 0.0001)
}

func TestPushFuelLocation_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"message":"price must be positive"}`)
	}))
	defer srv.Close()

	err := NewClient(srv.URL).PushFuelLocation(context.Background(), testPayload())
	require.Error(t, err)

	var rej *RejectedError
	require.True(t, errors.As(err, &rej))
	assert.Equal(t, http.StatusBadRequest, rej.StatusCode)
	assert.Equal(t, "price must be positive", rej.Message)
	assert.ErrorIs(t, err, ErrRejected)
	assert.NotErrorIs(t, err, ErrTransport)
}

func TestPushFuelLocation_RejectedWithoutMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `[]`)
	}))
	defer srv.Close()

	err := NewClient(srv.URL).PushFuelLocation(context.Background(), testPayload())

	var rej *RejectedError
	require.True(t, errors.As(err, &rej))
	assert.Equal(t, "Internal Server Error", rej.Message)
}

func TestPushFuelLocation_MalformedBody(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"success with html", http.StatusOK, "<html>ok</html>"},
		{"success with empty body", http.StatusOK, ""},
		{"failure with text", http.StatusBadGateway, "Bad Gateway"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			err := NewClient(srv.URL).PushFuelLocation(context.Background(), testPayload())
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrTransport)
			assert.Contains(t, err.Error(), "parse response")
		})
	}
}

func TestPushFuelLocation_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	err := NewClient(url).PushFuelLocation(context.Background(), testPayload())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransport)
	assert.Contains(t, err.Error(), "send request")
}

func TestPushFuelLocation_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	err := NewClient(srv.URL, WithTimeout(50*time.Millisecond)).PushFuelLocation(context.Background(), testPayload())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransport)
}

func TestWithHTTPClient(t *testing.T) {
	hc := &http.Client{}
	c := NewClient("http://localhost:5000", WithHTTPClient(hc)).(*httpClient)
	assert.Same(t, hc, c.http)
	assert.Equal(t, "http://localhost:5000", c.baseURL)
}
