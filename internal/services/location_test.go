package services

import (
	"context"
	"testing"
	"time"

	"delivery-route-service/internal/adapters/memory"
	"delivery-route-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocationServicePing(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 9, 30, 0, 0, time.FixedZone("CET", 3600))
	svc := &LocationService{
		Store:      memory.NewLocationStore(),
		DefaultHub: testHub,
		Now:        func() time.Time { return fixed },
	}
	ctx := context.Background()

	cur, err := svc.Current(ctx)
	require.NoError(t, err)
	assert.True(t, cur.IsDefault)
	assert.Equal(t, testHub, cur.Coordinate)

	c := domain.Coordinate{Latitude: 55.97, Longitude: -3.17}
	loc, err := svc.Ping(ctx, c)
	require.NoError(t, err)
	assert.Equal(t, domain.DriverID, loc.DriverID)
	assert.Equal(t, c, loc.Coordinate)
	assert.Equal(t, fixed.UTC(), loc.UpdatedAt)

	cur, err = svc.Current(ctx)
	require.NoError(t, err)
	assert.False(t, cur.IsDefault)
	assert.Equal(t, c, cur.Coordinate)
}

func TestLocationServicePingRejectsOutOfRange(t *testing.T) {
	svc := &LocationService{Store: memory.NewLocationStore(), DefaultHub: testHub}

	_, err := svc.Ping(context.Background(), domain.Coordinate{Latitude: 91, Longitude: 0})
	assert.Error(t, err)

	_, err = svc.Ping(context.Background(), domain.Coordinate{Latitude: 0, Longitude: -181})
	assert.Error(t, err)

	cur, err := svc.Current(context.Background())
	require.NoError(t, err)
	assert.True(t, cur.IsDefault)
}

func TestLocationServicePingStoreFailure(t *testing.T) {
	svc := &LocationService{Store: failingLocationStore{}}

	_, err := svc.Ping(context.Background(), domain.Coordinate{Latitude: 1, Longitude: 1})
	assert.ErrorIs(t, err, errStoreDown)
}
