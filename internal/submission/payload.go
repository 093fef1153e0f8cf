package submission

import (
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/Mayankdev0923/Energon/internal/model"
)

// buildPayload converts a validated draft into the backend body. Coordinates
// are sent longitude first.
func buildPayload(d Draft) model.LocationPayload {
	in := inputFrom(d)
	price, _ := parseDecimal(in.Price)
	availability, _ := strconv.Atoi(in.Availability)
	rating, _ := parseDecimal(in.Rating)

	coords := model.Coordinates{Lat: in.Latitude, Lng: in.Longitude}
	return model.LocationPayload{
		Name:         text(in.Name),
		Address:      text(in.Address),
		Coordinates:  coords.LngLat(),
		Price:        price,
		Availability: availability,
		Rating:       rating,
		Email:        text(in.Email),
	}
}

func text(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// formatDegrees renders a position component with the shortest text that
// round-trips to the same float.
func formatDegrees(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
