package locations

import (
	"math"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/Mayankdev0923/Energon/internal/model"
)

// Columnar sources (spreadsheets, shapefile attribute tables) name their
// columns after the fuel_locations table. Shapefile field names are capped at
// ten characters, hence the short aliases.
var columnAliases = map[string]string{
	"avail": "availability",
	"lat":   "latitude",
	"lng":   "longitude",
	"lon":   "longitude",
}

func columnName(header string) string {
	h := strings.ToLower(strings.TrimSpace(strings.TrimRight(header, "\x00")))
	if alias, ok := columnAliases[h]; ok {
		return alias
	}
	return h
}

// locationFromRecord converts one row keyed by column name. Blank numeric
// cells read as zero; anything else that does not parse is an error.
func locationFromRecord(rec map[string]string, row int) (model.FuelLocation, error) {
	get := func(col string) string { return strings.TrimSpace(rec[col]) }

	price, err := parseNumber(get("price"))
	if err != nil {
		return model.FuelLocation{}, eris.Wrapf(err, "row %d: price", row)
	}
	rating, err := parseNumber(get("rating"))
	if err != nil {
		return model.FuelLocation{}, eris.Wrapf(err, "row %d: rating", row)
	}
	availability, err := parseCount(get("availability"))
	if err != nil {
		return model.FuelLocation{}, eris.Wrapf(err, "row %d: availability", row)
	}

	return model.FuelLocation{
		ID: get("id"),
		LocationPayload: model.LocationPayload{
			Name:         get("name"),
			Address:      get("address"),
			Coordinates:  model.Coordinates{Lat: get("latitude"), Lng: get("longitude")}.LngLat(),
			Price:        price,
			Availability: availability,
			Rating:       rating,
			Email:        get("email"),
		},
	}, nil
}

func parseNumber(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, eris.Errorf("%q is not a number", s)
	}
	return f, nil
}

// parseCount accepts "12" and spreadsheet renderings such as "12.0".
func parseCount(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) {
		return 0, eris.Errorf("%q is not a whole number", s)
	}
	return int(f), nil
}
