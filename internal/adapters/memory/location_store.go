package memory

import (
	"context"
	"delivery-route-service/internal/domain"
	"sync"
)

// LocationStore keeps the driver position slot in process memory.
type LocationStore struct {
	mu  sync.RWMutex
	loc *domain.DriverLocation
}

func NewLocationStore() *LocationStore { return &LocationStore{} }

func (s *LocationStore) Latest(ctx context.Context) (domain.DriverLocation, bool, error) {
	if err := ctx.Err(); err != nil {
		return domain.DriverLocation{}, false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.loc == nil {
		return domain.DriverLocation{}, false, nil
	}
	return *s.loc, true, nil
}

func (s *LocationStore) Upsert(ctx context.Context, loc domain.DriverLocation) (domain.DriverLocation, error) {
	if err := ctx.Err(); err != nil {
		return domain.DriverLocation{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	loc.IsDefault = false
	s.loc = &loc
	return loc, nil
}
