// Package fuelapi is the client for the backend that stores fuel location submissions.
package fuelapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"github.com/Mayankdev0923/Energon/internal/model"
)

const pushPath = "/api/pushFuelLocation"

var (
	// ErrTransport matches any failure where no usable response was obtained.
	ErrTransport = errors.New("fuelapi: transport failure")
	// ErrRejected matches any non-2xx response from the backend.
	ErrRejected = errors.New("fuelapi: rejected by backend")
)

// TransportError reports a network failure or malformed response body.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("fuelapi: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrTransport) hold for every TransportError.
func (e *TransportError) Is(target error) bool { return target == ErrTransport }

// RejectedError carries the backend's non-2xx status and message.
type RejectedError struct {
	StatusCode int
	Message    string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("fuelapi: backend returned status %d: %s", e.StatusCode, e.Message)
}

// Is makes errors.Is(err, ErrRejected) hold for every RejectedError.
func (e *RejectedError) Is(target error) bool { return target == ErrRejected }

// Client submits fuel locations to the backend.
type Client interface {
	// PushFuelLocation posts one payload. It returns nil only for a 2xx
	// response carrying a JSON body.
	PushFuelLocation(ctx context.Context, payload model.LocationPayload) error
}

// Option configures the client.
type Option func(*httpClient)

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithTimeout sets the request timeout. Zero leaves requests unbounded.
func WithTimeout(d time.Duration) Option {
	return func(c *httpClient) {
		c.http.Timeout = d
	}
}

type httpClient struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a backend client rooted at baseURL (e.g. http://localhost:5000).
func NewClient(baseURL string, opts ...Option) Client {
	c := &httpClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

type responseBody struct {
	Message string `json:"message"`
}

func (c *httpClient) PushFuelLocation(ctx context.Context, payload model.LocationPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return eris.Wrap(err, "fuelapi: marshal payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+pushPath, bytes.NewReader(body))
	if err != nil {
		return eris.Wrap(err, "fuelapi: create request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Op: "send request", Err: err}
	}
	defer resp.Body.Close() //nolint:errcheck

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Op: "read response", Err: err}
	}

	// The body is parsed before the status is inspected: a non-JSON body is a
	// transport failure whatever the status.
	if !json.Valid(respBody) {
		return &TransportError{
			Op:  "parse response",
			Err: eris.Errorf("status %d: body is not valid JSON", resp.StatusCode),
		}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var rb responseBody
	_ = json.Unmarshal(respBody, &rb) // non-object bodies leave Message empty
	msg := rb.Message
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return &RejectedError{StatusCode: resp.StatusCode, Message: msg}
}
