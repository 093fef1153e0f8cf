package model

// Coordinates holds a latitude/longitude pair as decimal-degree text, exactly
// as entered or as produced by a position fix.
type Coordinates struct {
	Lat string `json:"lat" yaml:"lat"`
	Lng string `json:"lng" yaml:"lng"`
}

// LngLat returns the pair in backend order: longitude first.
func (c Coordinates) LngLat() [2]string {
	return [2]string{c.Lng, c.Lat}
}

// IsZero reports whether both halves of the pair are empty.
func (c Coordinates) IsZero() bool {
	return c.Lat == "" && c.Lng == ""
}

// LocationPayload is the JSON body accepted by the create-location endpoint.
type LocationPayload struct {
	Name         string    `json:"name" yaml:"name"`
	Address      string    `json:"address" yaml:"address"`
	Coordinates  [2]string `json:"coordinates" yaml:"coordinates"` // [longitude, latitude]
	Price        float64   `json:"price" yaml:"price"`
	Availability int       `json:"availability" yaml:"availability"`
	Rating       float64   `json:"rating" yaml:"rating"`
	Email        string    `json:"email" yaml:"email"`
}

// FuelLocation is a known location record: an identifier plus the submitted payload.
type FuelLocation struct {
	ID              string `json:"id" yaml:"id"`
	LocationPayload `yaml:",inline"`
}
