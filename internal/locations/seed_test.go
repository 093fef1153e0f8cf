package locations

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mayankdev0923/Energon/internal/config"
	"github.com/Mayankdev0923/Energon/internal/model"
)

var locationColumns = []string{"id", "name", "address", "longitude", "latitude", "price", "availability", "rating", "email"}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestFileSeeder_MappingDocument(t *testing.T) {
	path := writeFile(t, "locations.yaml", `
locations:
  - id: "a1"
    name: Shell Downtown
    address: 1 Main St
    coordinates: ["-122.4194", "37.7749"]
    price: 4.59
    availability: 12
    rating: 4.5
    email: ops@example.com
  - name: BP Uptown
    address: 9 Hill Rd
    coordinates: [-122.1, 37.9]
    price: 4.1
    availability: 3
    rating: 3
    email: bp@example.com
`)

	c, err := NewFileSeeder(path).Seed(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, c.Len())

	all := c.All()
	assert.Equal(t, "a1", all[0].ID)
	assert.Equal(t, "Shell Downtown", all[0].Name)
	assert.Equal(t, [2]string{"-122.4194", "37.7749"}, all[0].Coordinates)
	assert.InDelta(t, 4.59, all[0].Price, 1e-9)
	assert.Equal(t, 12, all[0].Availability)

	assert.NotEmpty(t, all[1].ID)
	assert.NotEqual(t, "a1", all[1].ID)
	assert.Equal(t, [2]string{"-122.1", "37.9"}, all[1].Coordinates)
}

func TestFileSeeder_BareJSONList(t *testing.T) {
	path := writeFile(t, "locations.json", `[
  {"id": "x", "name": "Chevron", "address": "2 Oak", "coordinates": ["10", "20"],
   "price": 3.5, "availability": 1, "rating": 5, "email": "c@example.com"}
]`)

	c, err := NewFileSeeder(path).Seed(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, c.Len())
	assert.True(t, c.Contains("x"))
	assert.Equal(t, [2]string{"10", "20"}, c.All()[0].Coordinates)
}

func TestFileSeeder_EmptyDocument(t *testing.T) {
	path := writeFile(t, "empty.yaml", "")

	c, err := NewFileSeeder(path).Seed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, c.Len())
}

func TestFileSeeder_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "scalar document", body: "hello", want: "list or a mapping"},
		{name: "duplicate ids", body: "- id: a\n- id: a\n", want: "duplicate id"},
		{name: "bad coordinates", body: "- id: a\n  coordinates: [1, 2, 3]\n", want: "parse"},
		{name: "malformed yaml", body: "locations: [", want: "parse"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "seed.yaml", tt.body)
			_, err := NewFileSeeder(path).Seed(context.Background())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestBuild_MissingIDsAvoidExplicitOnes(t *testing.T) {
	items := make([]model.FuelLocation, 0, 501)
	items = append(items, loc("fixed", "first"))
	for i := 0; i < 500; i++ {
		items = append(items, loc("", "generated"))
	}

	c, err := build(items)
	require.NoError(t, err)
	require.Equal(t, 501, c.Len())

	seen := make(map[string]bool, c.Len())
	for _, l := range c.All() {
		require.NotEmpty(t, l.ID)
		require.False(t, seen[l.ID], "duplicate id %s", l.ID)
		seen[l.ID] = true
	}
	assert.Equal(t, "fixed", c.All()[0].ID)
}

func TestBuild_DuplicateIDs(t *testing.T) {
	_, err := build([]model.FuelLocation{loc("a", "x"), loc("", "y"), loc("a", "z")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate id "a" at index 2`)
}

func TestFileSeeder_MissingFile(t *testing.T) {
	_, err := NewFileSeeder(filepath.Join(t.TempDir(), "nope.yaml")).Seed(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFileSeeder_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFileSeeder("unused").Seed(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSQLiteSeeder_Seed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fuel.db")
	conn, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = conn.Exec(`CREATE TABLE fuel_locations (
		id TEXT PRIMARY KEY, name TEXT, address TEXT, longitude TEXT, latitude TEXT,
		price REAL, availability INTEGER, rating REAL, email TEXT)`)
	require.NoError(t, err)
	_, err = conn.Exec(`INSERT INTO fuel_locations VALUES
		('b', 'Shell', '1 Main', '-122.4', '37.7', 4.5, 10, 4, 's@example.com'),
		('a', 'BP', '2 Oak', '-80.19', '25.77', 3.9, 2, 3.5, 'b@example.com')`)
	require.NoError(t, err)
	require.NoError(t, conn.Close())

	c, err := NewSQLiteSeeder(path).Seed(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, c.Len())

	all := c.All()
	assert.Equal(t, "a", all[0].ID)
	assert.Equal(t, [2]string{"-80.19", "25.77"}, all[0].Coordinates)
	assert.Equal(t, 2, all[0].Availability)
	assert.Equal(t, "b", all[1].ID)
	assert.InDelta(t, 4.5, all[1].Price, 1e-9)
}

func TestSQLiteSeeder_MissingTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.db")

	_, err := NewSQLiteSeeder(path).Seed(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sqlite: query locations")
}

func TestPostgresSeeder_Seed(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT id, name, address`).
		WillReturnRows(pgxmock.NewRows(locationColumns).
			AddRow("1", "Shell", "1 Main", "-122.4", "37.7", 4.5, 10, 4.0, "s@example.com").
			AddRow("2", "BP", "2 Oak", "-80.19", "25.77", 3.9, 2, 3.5, "b@example.com"))

	c, err := NewPostgresSeeder(mock).Seed(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, c.Len())
	assert.Equal(t, [2]string{"-122.4", "37.7"}, c.All()[0].Coordinates)
	assert.Equal(t, "b@example.com", c.All()[1].Email)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSeeder_QueryError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT id, name, address`).WillReturnError(assert.AnError)

	_, err = NewPostgresSeeder(mock).Seed(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSeeder_DuplicateRows(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT id, name, address`).
		WillReturnRows(pgxmock.NewRows(locationColumns).
			AddRow("1", "Shell", "1 Main", "0", "0", 1.0, 1, 1.0, "a@example.com").
			AddRow("1", "Shell", "1 Main", "0", "0", 1.0, 1, 1.0, "a@example.com"))

	_, err = NewPostgresSeeder(mock).Seed(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate id")
}

func TestFromConfig(t *testing.T) {
	tests := []struct {
		source string
		want   any
	}{
		{source: "file", want: &FileSeeder{}},
		{source: "xlsx", want: &XLSXSeeder{}},
		{source: "shapefile", want: &ShapefileSeeder{}},
		{source: "sqlite", want: &SQLiteSeeder{}},
		{source: "none", want: Empty{}},
		{source: "", want: Empty{}},
	}
	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			s, closeFn, err := FromConfig(context.Background(), config.LocationsConfig{Source: tt.source, Path: "x.yaml"})
			require.NoError(t, err)
			require.NotNil(t, closeFn)
			defer closeFn()
			assert.IsType(t, tt.want, s)
		})
	}
}

func TestFromConfig_PostgresBadURL(t *testing.T) {
	_, _, err := FromConfig(context.Background(), config.LocationsConfig{
		Source:      "postgres",
		DatabaseURL: "postgres://localhost:notaport/fuel",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "locations: connect postgres")
}

func TestLoad(t *testing.T) {
	c, err := Load(context.Background(), Empty{})
	require.NoError(t, err)
	assert.Equal(t, 0, c.Len())
}
