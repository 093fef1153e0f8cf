package submission

import (
	"strings"

	"github.com/Mayankdev0923/Energon/internal/model"
)

// NoticeKind classifies a user-visible notice.
type NoticeKind string

const (
	NoticeSuccess     NoticeKind = "success"
	NoticeError       NoticeKind = "error"
	NoticeUnsupported NoticeKind = "unsupported"
	NoticeValidation  NoticeKind = "validation"
)

const (
	msgSuccess     = "Fuel location added successfully!"
	msgRejected    = "Error adding fuel location: "
	msgTransport   = "Error submitting form"
	msgUnsupported = "Geolocation is not supported on this device"
	msgValidation  = "Please fill in the required fields: "
)

// Notice is a message for the presentation layer to show the user.
type Notice struct {
	Kind    NoticeKind   `json:"kind"`
	Message string       `json:"message"`
	Fields  []FieldError `json:"fields,omitempty"`
}

// Result is what an operation hands back to the presentation layer: the
// draft after the operation, and the notice to show, if any.
type Result struct {
	Draft  Draft               `json:"draft"`
	Notice *Notice             `json:"notice,omitempty"`
	Record *model.FuelLocation `json:"record,omitempty"`
}

func validationNotice(verr *ValidationError) *Notice {
	return &Notice{
		Kind:    NoticeValidation,
		Message: msgValidation + strings.Join(verr.Names(), ", "),
		Fields:  verr.Fields,
	}
}
