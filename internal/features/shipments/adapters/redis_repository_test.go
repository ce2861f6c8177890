package adapters

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"clearance-tracker/internal/core/clock"
	"clearance-tracker/internal/features/shipments/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPrefix = "test"

var testNow = time.Date(2025, 11, 2, 9, 30, 0, 0, time.UTC)

func newTestRepository(t *testing.T, opts ...Option) (*RedisShipmentRepository, *miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	opts = append([]Option{WithClock(clock.Fixed(testNow.Add(time.Hour)))}, opts...)
	return NewRedisShipmentRepository(client, testPrefix, opts...), mr, client
}

func newShipment(n int) *domain.Shipment {
	d := domain.Draft{
		ServiceType:    domain.ServiceTypeStandard,
		Origin:         "New York",
		Destination:    "Los Angeles",
		TypeOfShipment: "Parcel",
		Weight:         1.2,
		Product:        "Books",
		ReceiverDetails: domain.ReceiverDetails{
			Name:         "Jane Doe",
			AddressLine1: "1 Sunset Blvd",
			City:         "Los Angeles",
			ZipCode:      "90001",
			Country:      "USA",
		},
		ShipmentValue: decimal.RequireFromString("42.50"),
		CustomsStatus: domain.CustomsStatusOnHold,
	}
	return domain.NewShipment(d, fmt.Sprintf("id-%03d", n), fmt.Sprintf("SCS-20251102-%d", n), testNow)
}

func TestRedisShipmentRepository_CreateAndGet(t *testing.T) {
	repo, mr, _ := newTestRepository(t)
	ctx := context.Background()

	s := newShipment(330)
	require.NoError(t, repo.Create(ctx, s))
	assert.Equal(t, int64(1), s.Version)

	assert.True(t, mr.Exists("test:shipment:id-330"))
	got, err := mr.Get("test:tracking:SCS-20251102-330")
	require.NoError(t, err)
	assert.Equal(t, "id-330", got)

	byID, err := repo.GetByID(ctx, "id-330")
	require.NoError(t, err)
	assert.Equal(t, "SCS-20251102-330", byID.TrackingID)
	assert.Equal(t, int64(1), byID.Version)
	assert.True(t, decimal.RequireFromString("42.5").Equal(byID.ShipmentValue))
	assert.Len(t, byID.Progress, 5)
	assert.Equal(t, testNow, byID.CreatedAt)

	byTracking, err := repo.GetByTrackingID(ctx, "SCS-20251102-330")
	require.NoError(t, err)
	assert.Equal(t, "id-330", byTracking.ID)
}

func TestRedisShipmentRepository_CreateConflict(t *testing.T) {
	repo, _, _ := newTestRepository(t)
	ctx := context.Background()

	first := newShipment(7)
	require.NoError(t, repo.Create(ctx, first))

	dup := newShipment(8)
	dup.TrackingID = first.TrackingID
	dup.Product = "Should not be stored"

	err := repo.Create(ctx, dup)
	assert.ErrorIs(t, err, domain.ErrConflict)

	got, err := repo.GetByTrackingID(ctx, first.TrackingID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)
	assert.Equal(t, "Books", got.Product)

	_, err = repo.GetByID(ctx, dup.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	page, err := repo.List(ctx, domain.PageParams{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)
}

func TestRedisShipmentRepository_NotFound(t *testing.T) {
	repo, _, _ := newTestRepository(t)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = repo.GetByTrackingID(ctx, "SCS-20251102-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = repo.Update(ctx, "missing", func(*domain.Shipment) error { return nil })
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = repo.Delete(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRedisShipmentRepository_ListPagination(t *testing.T) {
	repo, _, _ := newTestRepository(t)
	ctx := context.Background()

	for i := 1; i <= 25; i++ {
		require.NoError(t, repo.Create(ctx, newShipment(i)))
	}

	seen := map[string]bool{}
	var order []string
	for pageNo, wantLen := range []int{10, 10, 5} {
		page, err := repo.List(ctx, domain.PageParams{Page: pageNo + 1, PageSize: 10})
		require.NoError(t, err)
		assert.Equal(t, 25, page.Total)
		assert.Equal(t, pageNo+1, page.Page)
		require.Len(t, page.Items, wantLen)
		for _, s := range page.Items {
			assert.False(t, seen[s.ID], "duplicate %s", s.ID)
			seen[s.ID] = true
			order = append(order, s.ID)
		}
	}
	assert.Len(t, seen, 25)
	assert.Equal(t, "id-025", order[0])
	assert.Equal(t, "id-001", order[len(order)-1])

	past, err := repo.List(ctx, domain.PageParams{Page: 4, PageSize: 10})
	require.NoError(t, err)
	assert.Empty(t, past.Items)
	assert.NotNil(t, past.Items)
	assert.Equal(t, 25, past.Total)
}

func TestRedisShipmentRepository_ListEmpty(t *testing.T) {
	repo, _, _ := newTestRepository(t)

	page, err := repo.List(context.Background(), domain.PageParams{Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.Equal(t, 0, page.Total)
	assert.Empty(t, page.Items)
}

func TestRedisShipmentRepository_Update(t *testing.T) {
	repo, _, _ := newTestRepository(t)
	ctx := context.Background()

	s := newShipment(1)
	require.NoError(t, repo.Create(ctx, s))

	updated, err := repo.Update(ctx, s.ID, func(cur *domain.Shipment) error {
		cur.Product = "Magazines"
		cur.ID = "hijacked"
		cur.TrackingID = "SCS-20250101-1"
		cur.CreatedAt = time.Time{}
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, "Magazines", updated.Product)
	assert.Equal(t, s.ID, updated.ID)
	assert.Equal(t, s.TrackingID, updated.TrackingID)
	assert.Equal(t, testNow, updated.CreatedAt)
	assert.Equal(t, testNow.Add(time.Hour), updated.UpdatedAt)
	assert.Equal(t, int64(2), updated.Version)

	stored, err := repo.GetByTrackingID(ctx, s.TrackingID)
	require.NoError(t, err)
	assert.Equal(t, "Magazines", stored.Product)
	assert.Equal(t, int64(2), stored.Version)
}

func TestRedisShipmentRepository_UpdateAbortKeepsRecord(t *testing.T) {
	repo, _, _ := newTestRepository(t)
	ctx := context.Background()

	s := newShipment(1)
	require.NoError(t, repo.Create(ctx, s))

	boom := errors.New("rejected")
	_, err := repo.Update(ctx, s.ID, func(cur *domain.Shipment) error {
		cur.Product = "Changed"
		return boom
	})
	assert.ErrorIs(t, err, boom)

	stored, err := repo.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "Books", stored.Product)
	assert.Equal(t, int64(1), stored.Version)
}

func TestRedisShipmentRepository_ConcurrentUpdatesAreNotLost(t *testing.T) {
	repo, _, _ := newTestRepository(t)
	ctx := context.Background()

	s := newShipment(1)
	require.NoError(t, repo.Create(ctx, s))

	const writers = 20
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := repo.Update(ctx, s.ID, func(cur *domain.Shipment) error {
				return cur.AppendEvent(domain.EventInput{
					Title:       fmt.Sprintf("Scan %d", i),
					Description: "Hub scan",
					Location:    "Chicago",
					Completed:   true,
				}, testNow)
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	stored, err := repo.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Progress, 5+writers)
	assert.Equal(t, int64(1+writers), stored.Version)
}

func TestRedisShipmentRepository_UpdateGivesUpWhenContended(t *testing.T) {
	repo, mr, other := newTestRepository(t, WithMaxRetries(3))
	ctx := context.Background()

	s := newShipment(1)
	require.NoError(t, repo.Create(ctx, s))
	key := "test:shipment:" + s.ID

	calls := 0
	_, err := repo.Update(ctx, s.ID, func(cur *domain.Shipment) error {
		calls++
		raw, err := mr.Get(key)
		require.NoError(t, err)
		// A write from another connection invalidates the WATCH.
		return other.Set(ctx, key, raw, 0).Err()
	})

	assert.ErrorIs(t, err, domain.ErrBusy)
	assert.Equal(t, 3, calls)

	stored, err := repo.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stored.Version)
}

func TestRedisShipmentRepository_Delete(t *testing.T) {
	repo, mr, _ := newTestRepository(t)
	ctx := context.Background()

	a, b := newShipment(1), newShipment(2)
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	removed, err := repo.Delete(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.TrackingID, removed.TrackingID)

	assert.False(t, mr.Exists("test:shipment:"+a.ID))
	assert.False(t, mr.Exists("test:tracking:"+a.TrackingID))

	_, err = repo.GetByTrackingID(ctx, a.TrackingID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	page, err := repo.List(ctx, domain.PageParams{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)
	require.Len(t, page.Items, 1)
	assert.Equal(t, b.ID, page.Items[0].ID)

	_, err = repo.Delete(ctx, a.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// The tracking code is free again.
	reuse := newShipment(3)
	reuse.TrackingID = a.TrackingID
	assert.NoError(t, repo.Create(ctx, reuse))
}

func TestRedisShipmentRepository_Ping(t *testing.T) {
	repo, mr, _ := newTestRepository(t)

	assert.NoError(t, repo.Ping(context.Background()))

	mr.Close()
	assert.Error(t, repo.Ping(context.Background()))
}
