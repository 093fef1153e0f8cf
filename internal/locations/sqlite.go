package locations

import (
	"context"
	"database/sql"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/Mayankdev0923/Energon/internal/model"
)

// SQLiteSeeder reads locations from a fuel_locations table in a SQLite file.
type SQLiteSeeder struct {
	dsn string
}

// NewSQLiteSeeder creates a SQLiteSeeder for the database at dsn.
func NewSQLiteSeeder(dsn string) *SQLiteSeeder {
	return &SQLiteSeeder{dsn: dsn}
}

// Seed implements Seeder.
func (s *SQLiteSeeder) Seed(ctx context.Context) (Collection, error) {
	conn, err := sql.Open("sqlite", s.dsn)
	if err != nil {
		return Collection{}, eris.Wrap(err, "sqlite: open")
	}
	defer conn.Close() //nolint:errcheck

	return seedFromDB(ctx, conn)
}

// seedFromDB runs the select against an open database handle.
func seedFromDB(ctx context.Context, conn *sql.DB) (Collection, error) {
	rows, err := conn.QueryContext(ctx, selectLocationsSQL)
	if err != nil {
		return Collection{}, eris.Wrap(err, "sqlite: query locations")
	}
	defer rows.Close() //nolint:errcheck

	var items []model.FuelLocation
	for rows.Next() {
		l, err := scanLocation(rows)
		if err != nil {
			return Collection{}, eris.Wrap(err, "sqlite: scan location")
		}
		items = append(items, l)
	}
	if err := rows.Err(); err != nil {
		return Collection{}, eris.Wrap(err, "sqlite: iterate locations")
	}
	return build(items)
}
