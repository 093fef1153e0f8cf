package submission

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Mayankdev0923/Energon/internal/geolocation"
	"github.com/Mayankdev0923/Energon/internal/model"
	"github.com/Mayankdev0923/Energon/pkg/geocode"
)

// --- Locator Mock ---

type mockLocator struct {
	mock.Mock
}

func (m *mockLocator) Available() bool {
	return m.Called().Bool(0)
}

func (m *mockLocator) CurrentPosition(ctx context.Context) (geolocation.Position, error) {
	args := m.Called(ctx)
	return args.Get(0).(geolocation.Position), args.Error(1)
}

// --- Reverser Mock ---

type mockReverser struct {
	mock.Mock
}

func (m *mockReverser) Reverse(ctx context.Context, lat, lng float64) (*geocode.ReverseResult, error) {
	args := m.Called(ctx, lat, lng)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*geocode.ReverseResult), args.Error(1)
}

// --- Backend Mock ---

type mockBackend struct {
	mock.Mock
}

func (m *mockBackend) PushFuelLocation(ctx context.Context, payload model.LocationPayload) error {
	return m.Called(ctx, payload).Error(0)
}
