package submission

import (
	"errors"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// draftInput is the flat view of a Draft the validation rules run against.
type draftInput struct {
	Name         string `json:"name" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Price        string `json:"price" validate:"required,decimal"`
	Availability string `json:"availability" validate:"required,integer"`
	Rating       string `json:"rating" validate:"required,rating"`
	Address      string `json:"address" validate:"required"`
	Latitude     string `json:"latitude" validate:"required,latitude"`
	Longitude    string `json:"longitude" validate:"required,longitude"`
}

func inputFrom(d Draft) draftInput {
	return draftInput{
		Name:         strings.TrimSpace(d.Name),
		Email:        strings.TrimSpace(d.Email),
		Price:        strings.TrimSpace(d.Price),
		Availability: strings.TrimSpace(d.Availability),
		Rating:       strings.TrimSpace(d.Rating),
		Address:      strings.TrimSpace(d.Address),
		Latitude:     strings.TrimSpace(d.Coordinates.Lat),
		Longitude:    strings.TrimSpace(d.Coordinates.Lng),
	}
}

const maxRating = 5

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		return name
	})
	// Errors are only returned for empty tags, which these are not.
	_ = v.RegisterValidation("decimal", func(fl validator.FieldLevel) bool {
		_, ok := parseDecimal(fl.Field().String())
		return ok
	})
	_ = v.RegisterValidation("integer", func(fl validator.FieldLevel) bool {
		_, err := strconv.Atoi(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("rating", func(fl validator.FieldLevel) bool {
		r, ok := parseDecimal(fl.Field().String())
		return ok && r >= 0 && r <= maxRating
	})
	return v
}

func parseDecimal(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// check returns one FieldError per invalid field, in form order.
func check(v *validator.Validate, d Draft) []FieldError {
	err := v.Struct(inputFrom(d))
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "", Reason: err.Error()}}
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: Field(fe.Field()), Reason: reason(fe.Tag())})
	}
	return out
}

func reason(tag string) string {
	switch tag {
	case "required":
		return "is required"
	case "email":
		return "must be an email address"
	case "decimal":
		return "must be a number"
	case "integer":
		return "must be a whole number"
	case "rating":
		return "must be a number from 0 to 5"
	case "latitude":
		return "must be a latitude in decimal degrees"
	case "longitude":
		return "must be a longitude in decimal degrees"
	}
	return "is invalid"
}
