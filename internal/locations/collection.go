// Package locations holds the Known-Locations Collection and the sources it
// is seeded from at start-up.
package locations

import (
	"slices"

	"github.com/google/uuid"

	"github.com/Mayankdev0923/Energon/internal/model"
)

// Collection is an ordered, immutable list of known fuel locations. The zero
// value is an empty collection.
type Collection struct {
	items []model.FuelLocation
}

// New returns a collection holding a copy of items.
func New(items ...model.FuelLocation) Collection {
	return Collection{items: slices.Clone(items)}
}

// Append returns a new collection with loc added at the end. The receiver is
// left untouched.
func (c Collection) Append(loc model.FuelLocation) Collection {
	next := make([]model.FuelLocation, len(c.items), len(c.items)+1)
	copy(next, c.items)
	return Collection{items: append(next, loc)}
}

// Len returns the number of known locations.
func (c Collection) Len() int { return len(c.items) }

// All returns a copy of the known locations in order.
func (c Collection) All() []model.FuelLocation {
	return slices.Clone(c.items)
}

// Contains reports whether a location with the given id is known.
func (c Collection) Contains(id string) bool {
	return slices.ContainsFunc(c.items, func(l model.FuelLocation) bool { return l.ID == id })
}

// IDFunc generates candidate record identifiers.
type IDFunc func() string

// NewID returns an identifier from gen that no location in c already uses.
// A nil gen uses random UUIDs.
func (c Collection) NewID(gen IDFunc) string {
	if gen == nil {
		gen = uuid.NewString
	}
	for {
		id := gen()
		if id != "" && !c.Contains(id) {
			return id
		}
	}
}
