package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"clearance-tracker/internal/core/clock"
	"clearance-tracker/internal/core/logger"
	"clearance-tracker/internal/features/shipments/domain"
	"clearance-tracker/internal/features/shipments/ports"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// DefaultMaxRetries bounds optimistic retries of a single Update or Delete.
const DefaultMaxRetries = 10

// createScript inserts a record, its tracking index entry and its listing
// position in one step. It returns 0 when either key is already taken.
//
// KEYS: record, tracking index, listing zset, sequence counter
// ARGV: record JSON, shipment id
var createScript = redis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 1 or redis.call("EXISTS", KEYS[2]) == 1 then
	return 0
end
local seq = redis.call("INCR", KEYS[4])
redis.call("SET", KEYS[1], ARGV[1])
redis.call("SET", KEYS[2], ARGV[2])
redis.call("ZADD", KEYS[3], seq, ARGV[2])
return seq
`)

// RedisShipmentRepository implements ports.ShipmentRepository on Redis.
//
// Each shipment is a JSON string under <prefix>:shipment:<id>. The tracking
// code maps to the id under <prefix>:tracking:<code>, and the listing order is a
// sorted set scored by a creation sequence.
type RedisShipmentRepository struct {
	client     redis.UniversalClient
	prefix     string
	clock      clock.Clock
	maxRetries int
	locks      *keyedMutex
}

// getter is satisfied by both the client and a WATCH transaction.
type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

// Option configures a RedisShipmentRepository.
type Option func(*RedisShipmentRepository)

// WithClock sets the clock used for UpdatedAt.
func WithClock(c clock.Clock) Option {
	return func(r *RedisShipmentRepository) {
		r.clock = c
	}
}

// WithMaxRetries sets how many times a contended update is retried before
// failing with domain.ErrBusy.
func WithMaxRetries(n int) Option {
	return func(r *RedisShipmentRepository) {
		if n > 0 {
			r.maxRetries = n
		}
	}
}

// NewRedisShipmentRepository creates a repository storing keys under prefix.
func NewRedisShipmentRepository(client redis.UniversalClient, prefix string, opts ...Option) *RedisShipmentRepository {
	r := &RedisShipmentRepository{
		client:     client,
		prefix:     prefix,
		clock:      clock.RealClock{},
		maxRetries: DefaultMaxRetries,
		locks:      newKeyedMutex(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var _ ports.ShipmentRepository = (*RedisShipmentRepository)(nil)

func (r *RedisShipmentRepository) recordKey(id string) string {
	return r.prefix + ":shipment:" + id
}

func (r *RedisShipmentRepository) trackingKey(trackingID string) string {
	return r.prefix + ":tracking:" + trackingID
}

func (r *RedisShipmentRepository) indexKey() string {
	return r.prefix + ":shipments"
}

func (r *RedisShipmentRepository) seqKey() string {
	return r.prefix + ":shipments:seq"
}

// Create stores s with Version 1.
func (r *RedisShipmentRepository) Create(ctx context.Context, s *domain.Shipment) error {
	rec := s.Clone()
	rec.Version = 1

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal shipment: %w", err)
	}

	keys := []string{r.recordKey(rec.ID), r.trackingKey(rec.TrackingID), r.indexKey(), r.seqKey()}
	seq, err := createScript.Run(ctx, r.client, keys, data, rec.ID).Int64()
	if err != nil {
		return fmt.Errorf("failed to create shipment %s: %w", rec.ID, err)
	}
	if seq == 0 {
		return fmt.Errorf("%w: %s", domain.ErrConflict, rec.TrackingID)
	}

	s.Version = rec.Version
	return nil
}

// GetByID returns the shipment stored under id.
func (r *RedisShipmentRepository) GetByID(ctx context.Context, id string) (*domain.Shipment, error) {
	return r.load(ctx, r.client, id)
}

// GetByTrackingID resolves trackingID through the tracking index.
func (r *RedisShipmentRepository) GetByTrackingID(ctx context.Context, trackingID string) (*domain.Shipment, error) {
	id, err := r.client.Get(ctx, r.trackingKey(trackingID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: tracking id %s", domain.ErrNotFound, trackingID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve tracking id %s: %w", trackingID, err)
	}
	return r.load(ctx, r.client, id)
}

// List returns one page of shipments, newest first. Count and ids come from
// the same MULTI block so Total always matches the ids the page was cut from.
func (r *RedisShipmentRepository) List(ctx context.Context, p domain.PageParams) (*domain.Page, error) {
	start := int64(p.Offset())
	stop := start + int64(p.PageSize) - 1

	var (
		total *redis.IntCmd
		ids   *redis.StringSliceCmd
	)
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		total = pipe.ZCard(ctx, r.indexKey())
		ids = pipe.ZRevRange(ctx, r.indexKey(), start, stop)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list shipments: %w", err)
	}

	page := &domain.Page{
		Items:    []domain.Shipment{},
		Total:    int(total.Val()),
		Page:     p.Page,
		PageSize: p.PageSize,
	}
	if len(ids.Val()) == 0 {
		return page, nil
	}

	keys := make([]string, len(ids.Val()))
	for i, id := range ids.Val() {
		keys[i] = r.recordKey(id)
	}
	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load shipment page: %w", err)
	}

	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			// Deleted between the range read and the fetch.
			continue
		}
		var s domain.Shipment
		if err := json.Unmarshal([]byte(raw), &s); err != nil {
			return nil, fmt.Errorf("failed to unmarshal shipment %s: %w", ids.Val()[i], err)
		}
		page.Items = append(page.Items, s)
	}
	return page, nil
}

// Update reads the current record, applies fn to a copy and writes it back
// inside WATCH/MULTI. A concurrent write makes the transaction fail and the
// whole read-modify-write is retried from a fresh read.
func (r *RedisShipmentRepository) Update(ctx context.Context, id string, fn ports.MutateFunc) (*domain.Shipment, error) {
	unlock := r.locks.Lock(id)
	defer unlock()

	key := r.recordKey(id)
	var updated *domain.Shipment

	txf := func(tx *redis.Tx) error {
		current, err := r.load(ctx, tx, id)
		if err != nil {
			return err
		}

		next := current.Clone()
		if err := fn(next); err != nil {
			return err
		}
		next.ID = current.ID
		next.TrackingID = current.TrackingID
		next.CreatedAt = current.CreatedAt
		next.UpdatedAt = r.clock.Now().UTC()
		next.Version = current.Version + 1

		data, err := json.Marshal(next)
		if err != nil {
			return fmt.Errorf("failed to marshal shipment: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			return nil
		})
		if err != nil {
			return err
		}
		updated = next
		return nil
	}

	if err := r.watchWithRetry(ctx, txf, key, id); err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the record, its tracking index entry and its listing position.
func (r *RedisShipmentRepository) Delete(ctx context.Context, id string) (*domain.Shipment, error) {
	unlock := r.locks.Lock(id)
	defer unlock()

	key := r.recordKey(id)
	var removed *domain.Shipment

	txf := func(tx *redis.Tx) error {
		current, err := r.load(ctx, tx, id)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, key, r.trackingKey(current.TrackingID))
			pipe.ZRem(ctx, r.indexKey(), id)
			return nil
		})
		if err != nil {
			return err
		}
		removed = current
		return nil
	}

	if err := r.watchWithRetry(ctx, txf, key, id); err != nil {
		return nil, err
	}
	return removed, nil
}

// Ping checks if Redis is reachable.
func (r *RedisShipmentRepository) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (r *RedisShipmentRepository) watchWithRetry(ctx context.Context, txf func(*redis.Tx) error, key, id string) error {
	for attempt := 1; attempt <= r.maxRetries; attempt++ {
		err := r.client.Watch(ctx, txf, key)
		if !errors.Is(err, redis.TxFailedErr) {
			return err
		}
		logger.Get().Debug("Shipment changed during update, retrying",
			zap.String("shipment_id", id),
			zap.Int("attempt", attempt),
		)
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	return fmt.Errorf("%w: %s after %d attempts", domain.ErrBusy, id, r.maxRetries)
}

func (r *RedisShipmentRepository) load(ctx context.Context, c getter, id string) (*domain.Shipment, error) {
	data, err := c.Get(ctx, r.recordKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get shipment %s: %w", id, err)
	}

	var s domain.Shipment
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal shipment %s: %w", id, err)
	}
	return &s, nil
}
