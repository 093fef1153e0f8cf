package locations

import (
	"context"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/Mayankdev0923/Energon/internal/config"
	"github.com/Mayankdev0923/Energon/internal/db"
	"github.com/Mayankdev0923/Energon/internal/model"
)

// Seeder loads the initial Known-Locations Collection. Seeders only read;
// nothing is ever written back to a seed source.
type Seeder interface {
	Seed(ctx context.Context) (Collection, error)
}

// Empty seeds nothing.
type Empty struct{}

// Seed implements Seeder.
func (Empty) Seed(context.Context) (Collection, error) { return Collection{}, nil }

// selectLocationsSQL is shared by the SQL seeders. Coordinates are stored as
// text so they round-trip exactly as submitted.
const selectLocationsSQL = `SELECT id, name, address, longitude, latitude, price, availability, rating, email FROM fuel_locations ORDER BY id`

// rowScanner is satisfied by both *sql.Rows and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanLocation(r rowScanner) (model.FuelLocation, error) {
	var l model.FuelLocation
	var lng, lat string
	if err := r.Scan(&l.ID, &l.Name, &l.Address, &lng, &lat, &l.Price, &l.Availability, &l.Rating, &l.Email); err != nil {
		return model.FuelLocation{}, err
	}
	l.Coordinates = model.Coordinates{Lat: lat, Lng: lng}.LngLat()
	return l, nil
}

// build fills in missing ids and rejects duplicates.
func build(items []model.FuelLocation) (Collection, error) {
	seen := make(map[string]struct{}, len(items))
	for i, l := range items {
		if l.ID == "" {
			continue
		}
		if _, dup := seen[l.ID]; dup {
			return Collection{}, eris.Errorf("locations: duplicate id %q at index %d", l.ID, i)
		}
		seen[l.ID] = struct{}{}
	}

	out := make([]model.FuelLocation, len(items))
	for i, l := range items {
		for l.ID == "" {
			id := uuid.NewString()
			if _, taken := seen[id]; !taken {
				l.ID = id
				seen[id] = struct{}{}
			}
		}
		out[i] = l
	}
	return Collection{items: out}, nil
}

// FromConfig builds the Seeder selected by cfg.Source. The returned close
// function releases any connection the seeder holds.
func FromConfig(ctx context.Context, cfg config.LocationsConfig) (Seeder, func(), error) {
	switch cfg.Source {
	case "file":
		return NewFileSeeder(cfg.Path), func() {}, nil
	case "xlsx":
		return NewXLSXSeeder(cfg.Path, cfg.Sheet), func() {}, nil
	case "shapefile":
		return NewShapefileSeeder(cfg.Path), func() {}, nil
	case "sqlite":
		return NewSQLiteSeeder(cfg.DatabaseURL), func() {}, nil
	case "postgres":
		pool, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, eris.Wrap(err, "locations: connect postgres")
		}
		return NewPostgresSeeder(pool), pool.Close, nil
	default:
		return Empty{}, func() {}, nil
	}
}

// Load runs the seeder and logs the outcome.
func Load(ctx context.Context, s Seeder) (Collection, error) {
	c, err := s.Seed(ctx)
	if err != nil {
		return Collection{}, err
	}
	zap.L().Info("known locations seeded", zap.Int("count", c.Len()))
	return c, nil
}
