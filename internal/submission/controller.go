package submission

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/Mayankdev0923/Energon/internal/geolocation"
	"github.com/Mayankdev0923/Energon/internal/locations"
	"github.com/Mayankdev0923/Energon/internal/model"
	"github.com/Mayankdev0923/Energon/pkg/fuelapi"
	"github.com/Mayankdev0923/Energon/pkg/geocode"
)

// State is the submission state machine position.
type State int

const (
	Idle State = iota
	Submitting
)

func (s State) String() string {
	if s == Submitting {
		return "submitting"
	}
	return "idle"
}

// Deps are the collaborators a Controller drives.
type Deps struct {
	Locator  geolocation.Locator
	Reverser geocode.Reverser // optional; nil skips address pre-fill
	Backend  fuelapi.Client
	Known    locations.Collection
	NewID    locations.IDFunc // optional; defaults to random UUIDs

	// LocateTimeout bounds one fix plus reverse geocode. Zero uses
	// DefaultLocateTimeout.
	LocateTimeout time.Duration
}

// DefaultLocateTimeout applies when Deps.LocateTimeout is zero.
const DefaultLocateTimeout = 30 * time.Second

// Controller owns one draft and the known-locations collection. It is safe
// for concurrent use; collaborator calls run without holding the lock.
type Controller struct {
	locator  geolocation.Locator
	reverser geocode.Reverser
	backend  fuelapi.Client
	newID    locations.IDFunc
	timeout  time.Duration
	validate *validator.Validate
	locating singleflight.Group

	mu    sync.Mutex
	draft Draft
	known locations.Collection
	state State
}

// New creates a Controller with an empty draft.
func New(deps Deps) (*Controller, error) {
	if deps.Backend == nil {
		return nil, eris.New("submission: backend client is required")
	}
	if deps.Locator == nil {
		deps.Locator = geolocation.Unsupported{}
	}
	if deps.LocateTimeout <= 0 {
		deps.LocateTimeout = DefaultLocateTimeout
	}
	return &Controller{
		locator:  deps.Locator,
		reverser: deps.Reverser,
		backend:  deps.Backend,
		newID:    deps.NewID,
		timeout:  deps.LocateTimeout,
		validate: newValidator(),
		known:    deps.Known,
	}, nil
}

// Draft returns a copy of the current draft.
func (c *Controller) Draft() Draft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// Known returns the current known-locations collection.
func (c *Controller) Known() locations.Collection {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.known
}

// State reports whether a submission is outstanding.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// UpdateField overwrites one draft field. The last write wins; nothing is
// validated until Submit.
func (c *Controller) UpdateField(f Field, raw string) Draft {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = c.draft.with(f, raw)
	return c.draft
}

// RequestCurrentLocation fills the draft's coordinates from the locator and,
// when a reverser is configured, its address from the first geocoding match.
// Only a missing capability is reported; every later failure is logged and
// leaves the draft as far as it got. A call made while another is running
// waits for that one instead of starting a second fix. The shared attempt is
// not cancelled by any one caller going away; it is bounded by the locate
// timeout instead.
func (c *Controller) RequestCurrentLocation(ctx context.Context) (Result, error) {
	if !c.locator.Available() {
		return Result{
			Draft:  c.Draft(),
			Notice: &Notice{Kind: NoticeUnsupported, Message: msgUnsupported},
		}, ErrCapabilityUnavailable
	}

	_, _, shared := c.locating.Do("locate", func() (any, error) {
		lctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
		defer cancel()
		c.locate(lctx)
		return nil, nil
	})
	if shared {
		zap.L().Debug("submission: joined in-flight location request")
	}
	return Result{Draft: c.Draft()}, nil
}

func (c *Controller) locate(ctx context.Context) {
	pos, err := c.locator.CurrentPosition(ctx)
	if err != nil {
		zap.L().Warn("submission: position fix failed", zap.Error(err))
		return
	}

	coords := model.Coordinates{Lat: formatDegrees(pos.Latitude), Lng: formatDegrees(pos.Longitude)}
	c.mu.Lock()
	c.draft.Coordinates = coords
	c.mu.Unlock()

	if c.reverser == nil {
		return
	}

	res, err := c.reverser.Reverse(ctx, pos.Latitude, pos.Longitude)
	if err != nil {
		zap.L().Warn("submission: reverse geocode failed",
			zap.String("lat", coords.Lat),
			zap.String("lng", coords.Lng),
			zap.Error(err),
		)
		return
	}
	if res == nil || !res.Matched || res.Address == "" {
		zap.L().Debug("submission: no address for position",
			zap.String("lat", coords.Lat),
			zap.String("lng", coords.Lng),
		)
		return
	}

	c.mu.Lock()
	c.draft.Address = res.Address
	c.mu.Unlock()
}

// Submit validates the draft and pushes it to the backend. On success the
// record joins the known collection under a fresh id and the draft is reset;
// on any failure the draft is kept for correction.
func (c *Controller) Submit(ctx context.Context) (Result, error) {
	c.mu.Lock()
	if c.state == Submitting {
		draft := c.draft
		c.mu.Unlock()
		return Result{Draft: draft}, ErrSubmitInProgress
	}

	draft := c.draft
	if fields := check(c.validate, draft); len(fields) > 0 {
		c.mu.Unlock()
		verr := &ValidationError{Fields: fields}
		zap.L().Info("submission: draft rejected by validation", zap.Strings("fields", verr.Names()))
		return Result{Draft: draft, Notice: validationNotice(verr)}, verr
	}

	payload := buildPayload(draft)
	c.state = Submitting
	c.mu.Unlock()

	err := c.backend.PushFuelLocation(ctx, payload)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = Idle

	if err != nil {
		return c.failed(err)
	}

	rec := model.FuelLocation{ID: c.known.NewID(c.newID), LocationPayload: payload}
	c.known = c.known.Append(rec)
	c.draft = Draft{}

	zap.L().Info("submission: fuel location added",
		zap.String("id", rec.ID),
		zap.String("name", rec.Name),
		zap.Int("known", c.known.Len()),
	)
	return Result{
		Draft:  c.draft,
		Notice: &Notice{Kind: NoticeSuccess, Message: msgSuccess},
		Record: &rec,
	}, nil
}

// failed maps a backend error to its notice. Callers hold c.mu.
func (c *Controller) failed(err error) (Result, error) {
	var rejected *fuelapi.RejectedError
	if errors.As(err, &rejected) {
		zap.L().Warn("submission: backend rejected fuel location",
			zap.Int("status", rejected.StatusCode),
			zap.String("message", rejected.Message),
		)
		return Result{
			Draft:  c.draft,
			Notice: &Notice{Kind: NoticeError, Message: msgRejected + rejected.Message},
		}, eris.Wrap(err, "submission: push fuel location")
	}

	zap.L().Warn("submission: push fuel location failed", zap.Error(err))
	if !errors.Is(err, ErrTransportFailure) {
		err = &fuelapi.TransportError{Op: "push", Err: err}
	}
	return Result{
		Draft:  c.draft,
		Notice: &Notice{Kind: NoticeError, Message: msgTransport},
	}, eris.Wrap(err, "submission: push fuel location")
}
