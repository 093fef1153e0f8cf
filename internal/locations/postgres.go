package locations

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/Mayankdev0923/Energon/internal/db"
	"github.com/Mayankdev0923/Energon/internal/model"
)

// PostgresSeeder reads locations from a fuel_locations table through a pgx pool.
type PostgresSeeder struct {
	pool db.Pool
}

// NewPostgresSeeder creates a PostgresSeeder over pool.
func NewPostgresSeeder(pool db.Pool) *PostgresSeeder {
	return &PostgresSeeder{pool: pool}
}

// Seed implements Seeder.
func (p *PostgresSeeder) Seed(ctx context.Context) (Collection, error) {
	rows, err := p.pool.Query(ctx, selectLocationsSQL)
	if err != nil {
		return Collection{}, eris.Wrap(err, "postgres: query locations")
	}
	defer rows.Close()

	var items []model.FuelLocation
	for rows.Next() {
		l, err := scanLocation(rows)
		if err != nil {
			return Collection{}, eris.Wrap(err, "postgres: scan location")
		}
		items = append(items, l)
	}
	if err := rows.Err(); err != nil {
		return Collection{}, eris.Wrap(err, "postgres: iterate locations")
	}
	return build(items)
}
