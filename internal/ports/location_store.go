package ports

import (
	"context"
	"delivery-route-service/internal/domain"
)

// Port: the single driver-position slot.
type LocationStore interface {
	// Return the most recently updated driver location, or ok=false if none was recorded.
	Latest(ctx context.Context) (loc domain.DriverLocation, ok bool, err error)
	// Upsert the location keyed by loc.DriverID.
	Upsert(ctx context.Context, loc domain.DriverLocation) (domain.DriverLocation, error)
}
