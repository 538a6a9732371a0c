package cache

import (
	"context"
	"testing"
	"time"

	"delivery-route-service/internal/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*RedisLocationStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisLocationStore(client, "test:driver:location"), mr
}

func TestRedisLocationStoreEmpty(t *testing.T) {
	store, _ := newTestStore(t)

	_, ok, err := store.Latest(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisLocationStoreUpsertReplacesSlot(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	first := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	_, err := store.Upsert(ctx, domain.DriverLocation{
		DriverID:   domain.DriverID,
		Coordinate: domain.Coordinate{Latitude: 55.95, Longitude: -3.19},
		UpdatedAt:  first,
	})
	require.NoError(t, err)

	second := first.Add(5 * time.Minute)
	saved, err := store.Upsert(ctx, domain.DriverLocation{
		DriverID:   domain.DriverID,
		Coordinate: domain.Coordinate{Latitude: 55.86, Longitude: -4.25},
		UpdatedAt:  second,
	})
	require.NoError(t, err)
	assert.False(t, saved.IsDefault)

	latest, ok, err := store.Latest(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, domain.Coordinate{Latitude: 55.86, Longitude: -4.25}, latest.Coordinate)
	assert.True(t, latest.UpdatedAt.Equal(second))

	assert.Len(t, mr.Keys(), 1)
}

func TestRedisLocationStoreCorruptValue(t *testing.T) {
	store, mr := newTestStore(t)
	require.NoError(t, mr.Set("test:driver:location", "not-json"))

	_, _, err := store.Latest(context.Background())
	assert.Error(t, err)
}

func TestRedisLocationStoreUnavailable(t *testing.T) {
	store, mr := newTestStore(t)
	mr.Close()

	_, _, err := store.Latest(context.Background())
	assert.Error(t, err)
}
