package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"clearance-tracker/internal/core/cache"
	"clearance-tracker/internal/core/clock"
	"clearance-tracker/internal/features/shipments/adapters"
	"clearance-tracker/internal/features/shipments/domain"
	"clearance-tracker/internal/features/shipments/ports"

	"github.com/alicebob/miniredis/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 11, 2, 9, 30, 0, 0, time.UTC)

// MockShipmentRepository is a mock implementation of ports.ShipmentRepository
type MockShipmentRepository struct {
	mock.Mock
}

func (m *MockShipmentRepository) Create(ctx context.Context, s *domain.Shipment) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockShipmentRepository) GetByID(ctx context.Context, id string) (*domain.Shipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) GetByTrackingID(ctx context.Context, trackingID string) (*domain.Shipment, error) {
	args := m.Called(ctx, trackingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) List(ctx context.Context, p domain.PageParams) (*domain.Page, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Page), args.Error(1)
}

func (m *MockShipmentRepository) Update(ctx context.Context, id string, fn ports.MutateFunc) (*domain.Shipment, error) {
	args := m.Called(ctx, id, fn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) Delete(ctx context.Context, id string) (*domain.Shipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func validDraft() domain.Draft {
	return domain.Draft{
		ServiceType:    domain.ServiceTypeExpress,
		Origin:         "New York",
		Destination:    "Los Angeles",
		TypeOfShipment: "Parcel",
		Weight:         2.5,
		Product:        "Electronics",
		PaymentMethod:  "Card",
		ReceiverDetails: domain.ReceiverDetails{
			Name:         "Jane Doe",
			AddressLine1: "1 Sunset Blvd",
			City:         "Los Angeles",
			ZipCode:      "90001",
			Country:      "USA",
		},
		ShipmentValue: decimal.RequireFromString("149.99"),
		CustomsStatus: domain.CustomsStatusOnHold,
	}
}

// sequentialIDs returns ids id-1, id-2, ...
func sequentialIDs() func() string {
	var n atomic.Int64
	return func() string { return fmt.Sprintf("id-%d", n.Add(1)) }
}

// suffixes replays the given tracking suffixes in order.
func suffixes(values ...int) func() int {
	var i atomic.Int64
	return func() int {
		return values[int(i.Add(1)-1)%len(values)]
	}
}

type fixture struct {
	svc   *ShipmentServiceImpl
	repo  *adapters.RedisShipmentRepository
	cache *cache.RedisAdapter
	mr    *miniredis.Miniredis
}

func newFixture(t *testing.T, settings Settings) fixture {
	t.Helper()
	mr := miniredis.RunT(t)

	c, err := cache.NewRedisAdapter("redis://" + mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })

	repo := adapters.NewRedisShipmentRepository(c.Client(), "test", adapters.WithClock(clock.Fixed(testNow)))

	if settings.Clock == nil {
		settings.Clock = clock.Fixed(testNow)
	}
	if settings.NewID == nil {
		settings.NewID = sequentialIDs()
	}
	if settings.TrackingIDs == nil {
		settings.TrackingIDs = domain.NewTrackingIDGenerator("SCS").WithSuffixSource(suffixes(330, 331, 332, 333, 334, 335))
	}
	settings.LookupCachePrefix = "test"

	return fixture{
		svc:   NewShipmentService(repo, c, settings),
		repo:  repo,
		cache: c,
		mr:    mr,
	}
}

func TestShipmentService_Create(t *testing.T) {
	f := newFixture(t, Settings{})
	ctx := context.Background()

	created, err := f.svc.Create(ctx, validDraft())
	require.NoError(t, err)

	assert.Equal(t, "id-1", created.ID)
	assert.Equal(t, "SCS-20251102-330", created.TrackingID)
	assert.Equal(t, int64(1), created.Version)
	assert.Len(t, created.Progress, 5)
	assert.Equal(t, domain.StatusInTransit, created.Status)

	got, err := f.svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.TrackingID, got.TrackingID)
}

func TestShipmentService_CreateValidation(t *testing.T) {
	f := newFixture(t, Settings{})

	d := validDraft()
	d.Weight = -1

	_, err := f.svc.Create(context.Background(), d)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "weight")

	page, err := f.svc.List(context.Background(), domain.PageParams{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, 0, page.Total)
}

func TestShipmentService_CreateRetriesGeneratedCollision(t *testing.T) {
	f := newFixture(t, Settings{
		TrackingIDs: domain.NewTrackingIDGenerator("SCS").WithSuffixSource(suffixes(330, 330, 331)),
	})
	ctx := context.Background()

	first, err := f.svc.Create(ctx, validDraft())
	require.NoError(t, err)
	assert.Equal(t, "SCS-20251102-330", first.TrackingID)

	second, err := f.svc.Create(ctx, validDraft())
	require.NoError(t, err)
	assert.Equal(t, "SCS-20251102-331", second.TrackingID)
}

func TestShipmentService_CreateGivesUpAfterMaxAttempts(t *testing.T) {
	repo := new(MockShipmentRepository)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Shipment")).
		Return(fmt.Errorf("%w: taken", domain.ErrConflict)).Times(3)

	svc := NewShipmentService(repo, nil, Settings{
		MaxCreateAttempts: 3,
		Clock:             clock.Fixed(testNow),
	})

	_, err := svc.Create(context.Background(), validDraft())
	assert.ErrorIs(t, err, domain.ErrConflict)
	repo.AssertExpectations(t)
}

func TestShipmentService_CreateSuppliedTrackingID(t *testing.T) {
	f := newFixture(t, Settings{})
	ctx := context.Background()

	d := validDraft()
	d.TrackingID = "SCS-20251102-7"

	created, err := f.svc.Create(ctx, d)
	require.NoError(t, err)
	assert.Equal(t, "SCS-20251102-7", created.TrackingID)

	got, err := f.svc.Track(ctx, d.TrackingID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = f.svc.Create(ctx, d)
	assert.ErrorIs(t, err, domain.ErrConflict)

	for _, code := range []string{"not-a-code", "scs-20251102-8", " SCS-20251102-8 "} {
		d.TrackingID = code
		_, err = f.svc.Create(ctx, d)
		assert.ErrorIs(t, err, domain.ErrValidation, code)
	}

	page, err := f.svc.List(ctx, domain.PageParams{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)
}

func TestShipmentService_CreateRepoError(t *testing.T) {
	repo := new(MockShipmentRepository)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Shipment")).
		Return(errors.New("connection reset")).Once()

	svc := NewShipmentService(repo, nil, Settings{Clock: clock.Fixed(testNow)})

	_, err := svc.Create(context.Background(), validDraft())
	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrConflict)
	repo.AssertExpectations(t)
}

func TestShipmentService_Track(t *testing.T) {
	f := newFixture(t, Settings{LookupCacheTTL: 30 * time.Second})
	ctx := context.Background()

	created, err := f.svc.Create(ctx, validDraft())
	require.NoError(t, err)

	t.Run("Found", func(t *testing.T) {
		got, err := f.svc.Track(ctx, created.TrackingID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
		assert.True(t, f.mr.Exists("test:track-cache:"+created.TrackingID))
	})

	t.Run("ExactMatchOnly", func(t *testing.T) {
		_, err := f.svc.Track(ctx, "scs-20251102-330")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("Unknown", func(t *testing.T) {
		_, err := f.svc.Track(ctx, "SCS-20251102-999")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("Malformed", func(t *testing.T) {
		_, err := f.svc.Track(ctx, "../../etc")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestShipmentService_TrackIgnoresFirstCallerCancellation(t *testing.T) {
	repo := new(MockShipmentRepository)
	shipment := domain.NewShipment(validDraft(), "id-1", "SCS-20251102-330", testNow)
	repo.On("GetByTrackingID", mock.MatchedBy(func(ctx context.Context) bool { return ctx.Err() == nil }), "SCS-20251102-330").
		Return(shipment, nil).Once()

	svc := NewShipmentService(repo, nil, Settings{Clock: clock.Fixed(testNow)})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got, err := svc.Track(ctx, "SCS-20251102-330")
	require.NoError(t, err)
	assert.Equal(t, "id-1", got.ID)
	repo.AssertExpectations(t)
}

func TestShipmentService_MutationInvalidatesTrackingCache(t *testing.T) {
	f := newFixture(t, Settings{LookupCacheTTL: time.Minute})
	ctx := context.Background()

	created, err := f.svc.Create(ctx, validDraft())
	require.NoError(t, err)

	_, err = f.svc.Track(ctx, created.TrackingID)
	require.NoError(t, err)
	require.True(t, f.mr.Exists("test:track-cache:"+created.TrackingID))

	_, err = f.svc.AppendEvent(ctx, created.ID, domain.EventInput{
		Title:       "Delivered",
		Description: "Handed to receiver",
		Completed:   true,
	})
	require.NoError(t, err)
	assert.False(t, f.mr.Exists("test:track-cache:"+created.TrackingID))

	got, err := f.svc.Track(ctx, created.TrackingID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDelivered, got.Status)
	assert.Equal(t, "Los Angeles", got.CurrentLocation)
}

func TestShipmentService_TrackWithoutCache(t *testing.T) {
	f := newFixture(t, Settings{})
	ctx := context.Background()

	created, err := f.svc.Create(ctx, validDraft())
	require.NoError(t, err)

	_, err = f.svc.Track(ctx, created.TrackingID)
	require.NoError(t, err)
	assert.False(t, f.mr.Exists("test:track-cache:"+created.TrackingID))
}

func TestShipmentService_Update(t *testing.T) {
	f := newFixture(t, Settings{})
	ctx := context.Background()

	created, err := f.svc.Create(ctx, validDraft())
	require.NoError(t, err)

	t.Run("Merge", func(t *testing.T) {
		cleared := domain.CustomsStatusCleared
		product := "Laptops"
		updated, err := f.svc.Update(ctx, created.ID, domain.Patch{
			CustomsStatus: &cleared,
			Product:       &product,
		})
		require.NoError(t, err)
		assert.Equal(t, domain.CustomsStatusCleared, updated.CustomsStatus)
		assert.Equal(t, "Laptops", updated.Product)
		assert.Equal(t, "New York", updated.Origin)
		assert.Equal(t, int64(2), updated.Version)
	})

	t.Run("InvalidLeavesRecord", func(t *testing.T) {
		weight := 0.0
		_, err := f.svc.Update(ctx, created.ID, domain.Patch{Weight: &weight})
		assert.ErrorIs(t, err, domain.ErrValidation)

		stored, err := f.svc.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, 2.5, stored.Weight)
	})

	t.Run("Unknown", func(t *testing.T) {
		_, err := f.svc.Update(ctx, "missing", domain.Patch{})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestShipmentService_TimelineOperations(t *testing.T) {
	f := newFixture(t, Settings{})
	ctx := context.Background()

	created, err := f.svc.Create(ctx, validDraft())
	require.NoError(t, err)

	t.Run("AppendOutForDelivery", func(t *testing.T) {
		s, err := f.svc.AppendEvent(ctx, created.ID, domain.EventInput{
			Title:       "Out for Delivery",
			Description: "With courier",
			Location:    "Los Angeles Hub",
			Completed:   true,
		})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusOutForDelivery, s.Status)
		assert.Equal(t, "Los Angeles Hub", s.CurrentLocation)
		require.Len(t, s.Progress, 6)
		assert.Equal(t, testNow, *s.Progress[5].Timestamp)
	})

	t.Run("EditLast", func(t *testing.T) {
		loc := "Santa Monica"
		s, err := f.svc.EditEvent(ctx, created.ID, 5, domain.EventPatch{Location: &loc})
		require.NoError(t, err)
		assert.Equal(t, "Santa Monica", s.CurrentLocation)
	})

	t.Run("Toggle", func(t *testing.T) {
		s, err := f.svc.ToggleCompleted(ctx, created.ID, 2)
		require.NoError(t, err)
		assert.True(t, s.Progress[2].Completed)
		assert.Nil(t, s.Progress[2].Timestamp)
		assert.Equal(t, domain.StatusOutForDelivery, s.Status)
	})

	t.Run("Remove", func(t *testing.T) {
		s, err := f.svc.RemoveEvent(ctx, created.ID, 5)
		require.NoError(t, err)
		assert.Len(t, s.Progress, 5)
		assert.Equal(t, "Los Angeles", s.CurrentLocation)
	})

	t.Run("OutOfRange", func(t *testing.T) {
		_, err := f.svc.RemoveEvent(ctx, created.ID, 42)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("DeliveredShortcut", func(t *testing.T) {
		s, err := f.svc.AppendEvent(ctx, created.ID, domain.EventInput{
			Title:     "Delivered",
			Location:  "Los Angeles",
			Completed: true,
		})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusDelivered, s.Status)
		assert.Equal(t, "Los Angeles", s.CurrentLocation)
		last := s.Progress[len(s.Progress)-1]
		assert.Equal(t, "Final delivery confirmed at Los Angeles.", last.Description)
		assert.Equal(t, testNow, *last.Timestamp)
	})

	t.Run("DeliveredWithoutLocationOrDescription", func(t *testing.T) {
		s, err := f.svc.AppendEvent(ctx, created.ID, domain.EventInput{Title: "delivered", Completed: true})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusDelivered, s.Status)
		last := s.Progress[len(s.Progress)-1]
		assert.Equal(t, "Los Angeles", last.Location)
		assert.Equal(t, "Final delivery confirmed at Los Angeles.", last.Description)
	})

	t.Run("InvalidEvent", func(t *testing.T) {
		_, err := f.svc.AppendEvent(ctx, created.ID, domain.EventInput{Title: "Scan"})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestShipmentService_Delete(t *testing.T) {
	f := newFixture(t, Settings{LookupCacheTTL: time.Minute})
	ctx := context.Background()

	created, err := f.svc.Create(ctx, validDraft())
	require.NoError(t, err)
	_, err = f.svc.Track(ctx, created.TrackingID)
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, created.ID))

	_, err = f.svc.Track(ctx, created.TrackingID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = f.svc.Delete(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestShipmentService_List(t *testing.T) {
	f := newFixture(t, Settings{})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := f.svc.Create(ctx, validDraft())
		require.NoError(t, err)
	}

	page, err := f.svc.List(ctx, domain.PageParams{Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "id-3", page.Items[0].ID)
}
