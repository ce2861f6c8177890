package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAdapter(t *testing.T) (*RedisAdapter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	adapter, err := NewRedisAdapter("redis://" + mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { adapter.Close() })

	return adapter, mr
}

func TestRedisAdapter_GetSet(t *testing.T) {
	adapter, _ := newTestAdapter(t)
	ctx := context.Background()

	key := "track:SCS-20251102-330"
	value := []byte(`{"tracking_id":"SCS-20251102-330"}`)

	require.NoError(t, adapter.Set(ctx, key, value, 10*time.Second))

	got, err := adapter.Get(ctx, key)
	assert.NoError(t, err)
	assert.Equal(t, value, got)
}

func TestRedisAdapter_GetMiss(t *testing.T) {
	adapter, _ := newTestAdapter(t)

	_, err := adapter.Get(context.Background(), "track:missing")

	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.Contains(t, err.Error(), "track:missing")
}

func TestRedisAdapter_Delete(t *testing.T) {
	adapter, _ := newTestAdapter(t)
	ctx := context.Background()

	require.NoError(t, adapter.Set(ctx, "delete_test", []byte("value"), 0))
	require.NoError(t, adapter.Delete(ctx, "delete_test"))

	_, err := adapter.Get(ctx, "delete_test")
	assert.ErrorIs(t, err, ErrCacheMiss)

	assert.NoError(t, adapter.Delete(ctx, "never_set"))
}

func TestRedisAdapter_TTL(t *testing.T) {
	adapter, mr := newTestAdapter(t)
	ctx := context.Background()

	require.NoError(t, adapter.Set(ctx, "ttl_test", []byte("expires_soon"), time.Second))

	_, err := adapter.Get(ctx, "ttl_test")
	assert.NoError(t, err)

	mr.FastForward(2 * time.Second)

	_, err = adapter.Get(ctx, "ttl_test")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedisAdapter_PingAndClient(t *testing.T) {
	adapter, _ := newTestAdapter(t)
	ctx := context.Background()

	assert.NoError(t, adapter.Ping(ctx))
	assert.NoError(t, adapter.Client().Ping(ctx).Err())
}

func TestRedisAdapter_InvalidURL(t *testing.T) {
	_, err := NewRedisAdapter("invalid://url")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse Redis URL")
}
