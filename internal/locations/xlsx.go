package locations

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/Mayankdev0923/Energon/internal/model"
)

// XLSXSeeder reads locations from a spreadsheet whose first row names the
// fuel_locations columns.
type XLSXSeeder struct {
	path  string
	sheet string
}

// NewXLSXSeeder creates an XLSXSeeder for path. An empty sheet name reads the
// first sheet.
func NewXLSXSeeder(path, sheet string) *XLSXSeeder {
	return &XLSXSeeder{path: path, sheet: sheet}
}

// Seed implements Seeder.
func (x *XLSXSeeder) Seed(ctx context.Context) (Collection, error) {
	if err := ctx.Err(); err != nil {
		return Collection{}, eris.Wrap(err, "xlsx: seed")
	}

	f, err := xlsx.OpenFile(x.path)
	if err != nil {
		return Collection{}, eris.Wrapf(err, "xlsx: open %s", x.path)
	}

	sheet, err := x.pickSheet(f)
	if err != nil {
		return Collection{}, err
	}
	if len(sheet.Rows) == 0 {
		return Collection{}, nil
	}

	header := rowToStrings(sheet.Rows[0])
	for i := range header {
		header[i] = columnName(header[i])
	}

	var items []model.FuelLocation
	for i, row := range sheet.Rows[1:] {
		cells := rowToStrings(row)
		if blank(cells) {
			continue
		}

		rec := make(map[string]string, len(header))
		for j, col := range header {
			if j < len(cells) && col != "" {
				rec[col] = cells[j]
			}
		}

		// Row numbers count from 1 with the header as row 1.
		l, err := locationFromRecord(rec, i+2)
		if err != nil {
			return Collection{}, eris.Wrapf(err, "xlsx: %s", x.path)
		}
		items = append(items, l)
	}
	return build(items)
}

func (x *XLSXSeeder) pickSheet(f *xlsx.File) (*xlsx.Sheet, error) {
	if x.sheet != "" {
		sheet, ok := f.Sheet[x.sheet]
		if !ok {
			return nil, eris.Errorf("xlsx: sheet %q not found", x.sheet)
		}
		return sheet, nil
	}
	if len(f.Sheets) == 0 {
		return nil, eris.New("xlsx: workbook has no sheets")
	}
	return f.Sheets[0], nil
}

func rowToStrings(row *xlsx.Row) []string {
	cells := make([]string, len(row.Cells))
	for j, cell := range row.Cells {
		cells[j] = cell.String()
	}
	return cells
}

func blank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
