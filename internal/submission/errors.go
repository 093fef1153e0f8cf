package submission

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Mayankdev0923/Energon/pkg/fuelapi"
)

var (
	// ErrCapabilityUnavailable is returned when no position source exists.
	ErrCapabilityUnavailable = errors.New("submission: geolocation not supported")
	// ErrValidationMissing matches every *ValidationError.
	ErrValidationMissing = errors.New("submission: required field missing or invalid")
	// ErrSubmitInProgress is returned when Submit is called while another
	// submission is outstanding.
	ErrSubmitInProgress = errors.New("submission: submit already in progress")
	// ErrBackendRejected matches a non-2xx backend response.
	ErrBackendRejected = fuelapi.ErrRejected
	// ErrTransportFailure matches a request that produced no usable response.
	ErrTransportFailure = fuelapi.ErrTransport
)

// FieldError describes one invalid draft field.
type FieldError struct {
	Field  Field  `json:"field"`
	Reason string `json:"reason"`
}

func (e FieldError) String() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// ValidationError lists every field that blocked a submission.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.String())
	}
	return "submission: invalid draft: " + strings.Join(parts, "; ")
}

// Unwrap lets errors.Is(err, ErrValidationMissing) hold.
func (e *ValidationError) Unwrap() error { return ErrValidationMissing }

// Names returns the invalid field names in order.
func (e *ValidationError) Names() []string {
	out := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		out = append(out, string(f.Field))
	}
	return out
}
