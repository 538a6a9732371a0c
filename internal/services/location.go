package services

import (
	"context"
	"delivery-route-service/internal/domain"
	"delivery-route-service/internal/platform/obs"
	"delivery-route-service/internal/ports"
	"fmt"
	"time"
)

// LocationService records driver pings into the single position slot.
type LocationService struct {
	Store      ports.LocationStore
	DefaultHub domain.Coordinate
	Now        func() time.Time
}

// Ping upserts the driver's last known position.
func (s *LocationService) Ping(ctx context.Context, c domain.Coordinate) (_ domain.DriverLocation, err error) {
	defer obs.Time(ctx, "location.Ping")(&err)

	if err := c.Validate(); err != nil {
		return domain.DriverLocation{}, fmt.Errorf("ping location: %w", err)
	}

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}

	loc, err := s.Store.Upsert(ctx, domain.DriverLocation{
		DriverID:   domain.DriverID,
		Coordinate: c,
		UpdatedAt:  now().UTC(),
	})
	if err != nil {
		return domain.DriverLocation{}, fmt.Errorf("ping location: upsert: %w", err)
	}

	return loc, nil
}

// Current returns the route origin the next computation would use.
func (s *LocationService) Current(ctx context.Context) (domain.DriverLocation, error) {
	return ResolveOrigin(ctx, s.Store, s.DefaultHub)
}
