package geocode

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/ewkb"
	"go.uber.org/zap"

	"github.com/Mayankdev0923/Energon/internal/db"
)

const tigerReverseSQL = `
	SELECT pprint_addy(r.addy[1])
	FROM reverse_geocode(ST_GeomFromEWKB($1)) AS r`

// TigerReverser reverse-geocodes against PostGIS TIGER/Line data.
type TigerReverser struct {
	pool db.Pool
}

// NewTiger creates a TigerReverser over the given pool.
func NewTiger(pool db.Pool) *TigerReverser {
	return &TigerReverser{pool: pool}
}

// Name identifies the provider in logs and results.
func (t *TigerReverser) Name() string { return "tiger" }

// Reverse implements Reverser.
func (t *TigerReverser) Reverse(ctx context.Context, lat, lng float64) (*ReverseResult, error) {
	point, err := encodePoint(lat, lng)
	if err != nil {
		return nil, err
	}

	var fullAddr sql.NullString
	err = t.pool.QueryRow(ctx, tigerReverseSQL, point).Scan(&fullAddr)
	if errors.Is(err, pgx.ErrNoRows) {
		return &ReverseResult{Matched: false, Source: "tiger"}, nil
	}
	if err != nil {
		zap.L().Debug("tiger reverse geocode: query failed",
			zap.Float64("lat", lat),
			zap.Float64("lng", lng),
			zap.Error(err),
		)
		return nil, eris.Wrap(err, "geocode: tiger reverse geocode")
	}

	addr := strings.TrimSpace(fullAddr.String)
	if !fullAddr.Valid || addr == "" {
		return &ReverseResult{Matched: false, Source: "tiger"}, nil
	}

	return &ReverseResult{Address: addr, Source: "tiger", Matched: true}, nil
}

// encodePoint renders lat/lng as an SRID 4326 EWKB point. go-geom XY order is
// (x=longitude, y=latitude).
func encodePoint(lat, lng float64) ([]byte, error) {
	p := geom.NewPointFlat(geom.XY, []float64{lng, lat}).SetSRID(4326)
	data, err := ewkb.Marshal(p, ewkb.NDR)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: encode point")
	}
	return data, nil
}
