package main

import (
	"context"
	"net/http"
	"time"

	"github.com/rotisserie/eris"

	"github.com/Mayankdev0923/Energon/internal/config"
	"github.com/Mayankdev0923/Energon/internal/db"
	"github.com/Mayankdev0923/Energon/internal/geolocation"
	"github.com/Mayankdev0923/Energon/internal/locations"
	"github.com/Mayankdev0923/Energon/internal/submission"
	"github.com/Mayankdev0923/Energon/pkg/fuelapi"
	"github.com/Mayankdev0923/Energon/pkg/geocode"
)

// workflowEnv holds the controller and the resources behind its
// collaborators. Callers should defer env.Close().
type workflowEnv struct {
	Controller *submission.Controller
	closers    []func()
}

// Close releases resources held by the environment.
func (we *workflowEnv) Close() {
	for i := len(we.closers) - 1; i >= 0; i-- {
		we.closers[i]()
	}
}

// initWorkflow seeds the known locations and builds the controller from c.
func initWorkflow(ctx context.Context, c *config.Config) (*workflowEnv, error) {
	env := &workflowEnv{}

	seeder, closeSeeder, err := locations.FromConfig(ctx, c.Locations)
	if err != nil {
		return nil, err
	}
	known, err := locations.Load(ctx, seeder)
	closeSeeder()
	if err != nil {
		return nil, eris.Wrap(err, "seed known locations")
	}

	reverser, closeReverser, err := initReverser(ctx, c.Geocode)
	if err != nil {
		return nil, err
	}
	env.closers = append(env.closers, closeReverser)

	backend := fuelapi.NewClient(c.Backend.BaseURL,
		fuelapi.WithTimeout(time.Duration(c.Backend.TimeoutSecs)*time.Second),
	)

	ctrl, err := submission.New(submission.Deps{
		Locator:  geolocation.FromConfig(c.Geolocation, &http.Client{Timeout: 10 * time.Second}),
		Reverser: reverser,
		Backend:  backend,
		Known:    known,

		LocateTimeout: time.Duration(c.Geolocation.TimeoutSecs) * time.Second,
	})
	if err != nil {
		env.Close()
		return nil, err
	}
	env.Controller = ctrl
	return env, nil
}

// initReverser builds the reverse geocoder for gc.Provider. A nil Reverser
// means address pre-fill is off.
func initReverser(ctx context.Context, gc config.GeocodeConfig) (geocode.Reverser, func(), error) {
	noop := func() {}
	google := func() *geocode.GoogleReverser {
		return geocode.NewGoogle(gc.APIKey,
			geocode.WithBaseURL(gc.BaseURL),
			geocode.WithRateLimit(gc.RateLimit),
		)
	}

	switch gc.Provider {
	case "google":
		return google(), noop, nil
	case "tiger", "cascade":
		pool, err := db.Connect(ctx, gc.DatabaseURL)
		if err != nil {
			return nil, nil, eris.Wrap(err, "connect geocode database")
		}
		tiger := geocode.NewTiger(pool)
		if gc.Provider == "tiger" {
			return tiger, pool.Close, nil
		}
		return geocode.NewCascade(tiger, google()), pool.Close, nil
	default:
		return nil, noop, nil
	}
}
