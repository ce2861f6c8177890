package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"clearance-tracker/internal/core/cache"
	"clearance-tracker/internal/core/clock"
	"clearance-tracker/internal/core/logger"
	"clearance-tracker/internal/features/shipments/domain"
	"clearance-tracker/internal/features/shipments/ports"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// DefaultMaxCreateAttempts is how many generated tracking codes Create tries.
const DefaultMaxCreateAttempts = 5

// Settings tunes a ShipmentServiceImpl. Zero values fall back to defaults.
type Settings struct {
	// TrackingIDs generates codes for drafts that do not bring their own.
	TrackingIDs *domain.TrackingIDGenerator
	// MaxCreateAttempts bounds retries after a generated code collides.
	MaxCreateAttempts int
	// LookupCacheTTL is how long Track serves a cached copy. 0 disables the cache.
	LookupCacheTTL time.Duration
	// LookupCachePrefix namespaces the cache keys.
	LookupCachePrefix string
	Clock             clock.Clock
	// NewID returns a fresh internal identifier.
	NewID func() string
	Meter metric.Meter
}

// ShipmentServiceImpl implements ports.ShipmentService.
type ShipmentServiceImpl struct {
	repo     ports.ShipmentRepository
	cache    cache.Cache
	settings Settings
	lookups  singleflight.Group

	mutations    metric.Int64Counter
	trackLookups metric.Int64Counter
}

var _ ports.ShipmentService = (*ShipmentServiceImpl)(nil)

// NewShipmentService creates a new ShipmentServiceImpl. c may be nil, in which
// case tracking lookups always go to the repository.
func NewShipmentService(repo ports.ShipmentRepository, c cache.Cache, settings Settings) *ShipmentServiceImpl {
	if settings.TrackingIDs == nil {
		settings.TrackingIDs = domain.NewTrackingIDGenerator(domain.DefaultTrackingPrefix)
	}
	if settings.MaxCreateAttempts < 1 {
		settings.MaxCreateAttempts = DefaultMaxCreateAttempts
	}
	if settings.Clock == nil {
		settings.Clock = clock.RealClock{}
	}
	if settings.NewID == nil {
		settings.NewID = uuid.NewString
	}
	if settings.Meter == nil {
		settings.Meter = noop.NewMeterProvider().Meter("shipments")
	}
	if settings.LookupCachePrefix == "" {
		settings.LookupCachePrefix = "clearance"
	}

	s := &ShipmentServiceImpl{
		repo:     repo,
		cache:    c,
		settings: settings,
	}
	s.initMetrics()
	return s
}

func (s *ShipmentServiceImpl) initMetrics() {
	var err error
	s.mutations, err = s.settings.Meter.Int64Counter("shipments.mutations",
		metric.WithDescription("Committed shipment mutations by operation"))
	if err != nil {
		logger.Get().Warn("Failed to create mutations counter", zap.Error(err))
		s.mutations, _ = noop.NewMeterProvider().Meter("shipments").Int64Counter("shipments.mutations")
	}
	s.trackLookups, err = s.settings.Meter.Int64Counter("shipments.tracking_lookups",
		metric.WithDescription("Public tracking lookups by result"))
	if err != nil {
		logger.Get().Warn("Failed to create lookups counter", zap.Error(err))
		s.trackLookups, _ = noop.NewMeterProvider().Meter("shipments").Int64Counter("shipments.tracking_lookups")
	}
}

// Create books a new shipment from d. A caller-supplied tracking code is stored
// exactly as given: it must already have the PREFIX-YYYYMMDD-NNN shape, and a
// collision is returned immediately. Generated codes are retried.
func (s *ShipmentServiceImpl) Create(ctx context.Context, d domain.Draft) (*domain.Shipment, error) {
	supplied := d.TrackingID
	attempts := s.settings.MaxCreateAttempts
	if supplied != "" {
		attempts = 1
	}

	for attempt := 1; attempt <= attempts; attempt++ {
		now := s.settings.Clock.Now()
		trackingID := supplied
		if trackingID == "" {
			trackingID = s.settings.TrackingIDs.Generate(now)
		}

		shipment := domain.NewShipment(d, s.settings.NewID(), trackingID, now)
		if err := domain.ValidateShipment(shipment); err != nil {
			return nil, err
		}

		err := s.repo.Create(ctx, shipment)
		if err == nil {
			s.recordMutation(ctx, "create", shipment)
			return shipment, nil
		}
		if supplied != "" || !errors.Is(err, domain.ErrConflict) {
			return nil, fmt.Errorf("service: failed to create shipment: %w", err)
		}
		logger.Get().Debug("Generated tracking id collided, retrying",
			zap.String("tracking_id", trackingID),
			zap.Int("attempt", attempt),
		)
	}

	return nil, fmt.Errorf("%w: no free tracking id after %d attempts", domain.ErrConflict, attempts)
}

// GetByID returns the full record for the admin view.
func (s *ShipmentServiceImpl) GetByID(ctx context.Context, id string) (*domain.Shipment, error) {
	shipment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get shipment: %w", err)
	}
	return shipment, nil
}

// Track resolves a public tracking code by exact match. Concurrent lookups of
// one code share a single repository read, and the result is kept in the
// lookup cache for LookupCacheTTL.
func (s *ShipmentServiceImpl) Track(ctx context.Context, trackingID string) (*domain.Shipment, error) {
	if !domain.IsTrackingID(trackingID) {
		s.countLookup(ctx, "not_found")
		return nil, fmt.Errorf("%w: tracking id %q", domain.ErrNotFound, trackingID)
	}

	if cached, ok := s.cachedLookup(ctx, trackingID); ok {
		s.countLookup(ctx, "hit")
		return cached, nil
	}

	// The shared read outlives any single caller's cancellation.
	shared := context.WithoutCancel(ctx)
	v, err, _ := s.lookups.Do(trackingID, func() (interface{}, error) {
		shipment, err := s.repo.GetByTrackingID(shared, trackingID)
		if err != nil {
			return nil, err
		}
		s.storeLookup(shared, shipment)
		return shipment, nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.countLookup(ctx, "not_found")
		}
		return nil, fmt.Errorf("service: failed to track shipment: %w", err)
	}

	s.countLookup(ctx, "miss")
	return v.(*domain.Shipment).Clone(), nil
}

// List returns one page of shipments, newest first.
func (s *ShipmentServiceImpl) List(ctx context.Context, p domain.PageParams) (*domain.Page, error) {
	page, err := s.repo.List(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list shipments: %w", err)
	}
	return page, nil
}

// Update merges p into the stored shipment and re-validates the result.
func (s *ShipmentServiceImpl) Update(ctx context.Context, id string, p domain.Patch) (*domain.Shipment, error) {
	return s.mutate(ctx, "update", id, func(sh *domain.Shipment) error {
		p.Apply(sh)
		return domain.ValidateShipment(sh)
	})
}

// Delete removes a shipment and drops its cached tracking copy.
func (s *ShipmentServiceImpl) Delete(ctx context.Context, id string) error {
	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("service: failed to delete shipment: %w", err)
	}
	s.recordMutation(ctx, "delete", removed)
	return nil
}

// AppendEvent adds a milestone to the end of the timeline. A "Delivered"
// milestone without a location is placed at the destination, and one without
// a description gets a delivery confirmation note.
func (s *ShipmentServiceImpl) AppendEvent(ctx context.Context, id string, in domain.EventInput) (*domain.Shipment, error) {
	return s.mutate(ctx, "event_append", id, func(sh *domain.Shipment) error {
		ev := in
		if strings.EqualFold(strings.TrimSpace(ev.Title), string(domain.StatusDelivered)) {
			if strings.TrimSpace(ev.Location) == "" {
				ev.Location = sh.Destination
			}
			if strings.TrimSpace(ev.Description) == "" {
				ev.Description = fmt.Sprintf("Final delivery confirmed at %s.", strings.TrimSpace(ev.Location))
			}
		}
		return sh.AppendEvent(ev, s.settings.Clock.Now())
	})
}

// EditEvent edits one milestone in place.
func (s *ShipmentServiceImpl) EditEvent(ctx context.Context, id string, index int, p domain.EventPatch) (*domain.Shipment, error) {
	return s.mutate(ctx, "event_edit", id, func(sh *domain.Shipment) error {
		return sh.EditEvent(index, p)
	})
}

// RemoveEvent deletes one milestone.
func (s *ShipmentServiceImpl) RemoveEvent(ctx context.Context, id string, index int) (*domain.Shipment, error) {
	return s.mutate(ctx, "event_remove", id, func(sh *domain.Shipment) error {
		return sh.RemoveEvent(index)
	})
}

// ToggleCompleted flips the completed flag of one milestone.
func (s *ShipmentServiceImpl) ToggleCompleted(ctx context.Context, id string, index int) (*domain.Shipment, error) {
	return s.mutate(ctx, "event_toggle", id, func(sh *domain.Shipment) error {
		return sh.ToggleCompleted(index)
	})
}

func (s *ShipmentServiceImpl) mutate(ctx context.Context, op, id string, fn ports.MutateFunc) (*domain.Shipment, error) {
	updated, err := s.repo.Update(ctx, id, fn)
	if err != nil {
		return nil, fmt.Errorf("service: %s failed: %w", op, err)
	}
	s.recordMutation(ctx, op, updated)
	return updated, nil
}

func (s *ShipmentServiceImpl) recordMutation(ctx context.Context, op string, sh *domain.Shipment) {
	s.invalidateLookup(ctx, sh.TrackingID)
	s.mutations.Add(ctx, 1, metric.WithAttributes(attribute.String("op", op)))
	logger.Get().Info("Shipment changed",
		zap.String("op", op),
		zap.String("shipment_id", sh.ID),
		zap.String("tracking_id", sh.TrackingID),
		zap.Int64("version", sh.Version),
	)
}

func (s *ShipmentServiceImpl) countLookup(ctx context.Context, result string) {
	s.trackLookups.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
}

func (s *ShipmentServiceImpl) lookupCacheEnabled() bool {
	return s.cache != nil && s.settings.LookupCacheTTL > 0
}

func (s *ShipmentServiceImpl) lookupKey(trackingID string) string {
	return s.settings.LookupCachePrefix + ":track-cache:" + trackingID
}

func (s *ShipmentServiceImpl) cachedLookup(ctx context.Context, trackingID string) (*domain.Shipment, bool) {
	if !s.lookupCacheEnabled() {
		return nil, false
	}

	data, err := s.cache.Get(ctx, s.lookupKey(trackingID))
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			logger.Get().Warn("Tracking cache read failed", zap.String("tracking_id", trackingID), zap.Error(err))
		}
		return nil, false
	}

	var shipment domain.Shipment
	if err := json.Unmarshal(data, &shipment); err != nil {
		logger.Get().Warn("Dropping unreadable tracking cache entry", zap.String("tracking_id", trackingID), zap.Error(err))
		return nil, false
	}
	return &shipment, true
}

func (s *ShipmentServiceImpl) storeLookup(ctx context.Context, sh *domain.Shipment) {
	if !s.lookupCacheEnabled() {
		return
	}

	data, err := json.Marshal(sh)
	if err != nil {
		logger.Get().Warn("Failed to encode tracking cache entry", zap.String("tracking_id", sh.TrackingID), zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, s.lookupKey(sh.TrackingID), data, s.settings.LookupCacheTTL); err != nil {
		logger.Get().Warn("Tracking cache write failed", zap.String("tracking_id", sh.TrackingID), zap.Error(err))
	}
}

func (s *ShipmentServiceImpl) invalidateLookup(ctx context.Context, trackingID string) {
	if !s.lookupCacheEnabled() {
		return
	}
	if err := s.cache.Delete(ctx, s.lookupKey(trackingID)); err != nil {
		logger.Get().Warn("Tracking cache invalidation failed", zap.String("tracking_id", trackingID), zap.Error(err))
	}
}
