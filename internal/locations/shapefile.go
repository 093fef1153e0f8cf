package locations

import (
	"context"
	"strconv"
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/Mayankdev0923/Energon/internal/model"
)

// ShapefileSeeder reads locations from a point shapefile. Each point is a
// station; its attribute table carries the remaining fuel_locations columns.
type ShapefileSeeder struct {
	path string
}

// NewShapefileSeeder creates a ShapefileSeeder for the .shp file at path.
func NewShapefileSeeder(path string) *ShapefileSeeder {
	return &ShapefileSeeder{path: path}
}

// Seed implements Seeder.
func (s *ShapefileSeeder) Seed(ctx context.Context) (Collection, error) {
	if err := ctx.Err(); err != nil {
		return Collection{}, eris.Wrap(err, "shapefile: seed")
	}

	reader, err := shp.Open(s.path)
	if err != nil {
		return Collection{}, eris.Wrapf(err, "shapefile: open %s", s.path)
	}
	defer func() { _ = reader.Close() }()

	fields := reader.Fields()
	cols := make([]string, len(fields))
	for i, f := range fields {
		cols[i] = columnName(f.String())
	}

	var items []model.FuelLocation
	var skipped int
	for reader.Next() {
		n, shape := reader.Shape()
		pt, ok := shape.(*shp.Point)
		if !ok {
			skipped++
			continue
		}

		rec := make(map[string]string, len(cols)+2)
		for i, col := range cols {
			rec[col] = strings.TrimRight(reader.Attribute(i), "\x00")
		}
		// The geometry is authoritative for position. go-shp X is longitude.
		rec["longitude"] = strconv.FormatFloat(pt.X, 'f', -1, 64)
		rec["latitude"] = strconv.FormatFloat(pt.Y, 'f', -1, 64)

		l, err := locationFromRecord(rec, n+1)
		if err != nil {
			return Collection{}, eris.Wrapf(err, "shapefile: %s", s.path)
		}
		items = append(items, l)
	}

	if skipped > 0 {
		zap.L().Debug("shapefile: skipped non-point records",
			zap.String("path", s.path),
			zap.Int("skipped", skipped),
		)
	}
	return build(items)
}
