// Package submission implements the fuel-location submission workflow: the
// draft being edited, position pre-fill and the push to the backend.
package submission

import (
	"strings"

	"github.com/rotisserie/eris"

	"github.com/Mayankdev0923/Energon/internal/model"
)

// Field names one editable draft field.
type Field string

const (
	FieldName         Field = "name"
	FieldEmail        Field = "email"
	FieldAddress      Field = "address"
	FieldLatitude     Field = "latitude"
	FieldLongitude    Field = "longitude"
	FieldPrice        Field = "price"
	FieldAvailability Field = "availability"
	FieldRating       Field = "rating"
)

// Fields lists every draft field in form order.
var Fields = []Field{
	FieldName, FieldEmail, FieldPrice, FieldAvailability, FieldRating,
	FieldAddress, FieldLatitude, FieldLongitude,
}

var fieldAliases = map[string]Field{
	"lat": FieldLatitude,
	"lng": FieldLongitude,
	"lon": FieldLongitude,
}

// ParseField maps a boundary field name to a Field. Matching ignores case
// and surrounding space.
func ParseField(s string) (Field, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if f, ok := fieldAliases[key]; ok {
		return f, nil
	}
	for _, f := range Fields {
		if string(f) == key {
			return f, nil
		}
	}
	return "", eris.Errorf("submission: unknown field %q", s)
}

// Draft is the in-progress form data. Every value is kept as the raw text the
// presentation layer reported; parsing happens at submit time.
type Draft struct {
	Name         string            `json:"name"`
	Email        string            `json:"email"`
	Address      string            `json:"address"`
	Coordinates  model.Coordinates `json:"coordinates"`
	Price        string            `json:"price"`
	Availability string            `json:"availability"`
	Rating       string            `json:"rating"`
}

// Value returns the raw text held for f.
func (d Draft) Value(f Field) string {
	switch f {
	case FieldName:
		return d.Name
	case FieldEmail:
		return d.Email
	case FieldAddress:
		return d.Address
	case FieldLatitude:
		return d.Coordinates.Lat
	case FieldLongitude:
		return d.Coordinates.Lng
	case FieldPrice:
		return d.Price
	case FieldAvailability:
		return d.Availability
	case FieldRating:
		return d.Rating
	}
	return ""
}

// with returns a copy of d with f set to v. Unknown fields leave d unchanged.
func (d Draft) with(f Field, v string) Draft {
	switch f {
	case FieldName:
		d.Name = v
	case FieldEmail:
		d.Email = v
	case FieldAddress:
		d.Address = v
	case FieldLatitude:
		d.Coordinates.Lat = v
	case FieldLongitude:
		d.Coordinates.Lng = v
	case FieldPrice:
		d.Price = v
	case FieldAvailability:
		d.Availability = v
	case FieldRating:
		d.Rating = v
	}
	return d
}
