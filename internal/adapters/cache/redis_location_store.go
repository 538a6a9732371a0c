package cache

import (
	"context"
	"delivery-route-service/internal/domain"
	"delivery-route-service/internal/platform/obs"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLocationStore keeps the driver position in a single Redis key.
// With one driver the slot is the whole state; Upsert is a plain SET.
type RedisLocationStore struct {
	Client *redis.Client
	Key    string
}

func NewRedisLocationStore(client *redis.Client, key string) *RedisLocationStore {
	return &RedisLocationStore{Client: client, Key: key}
}

type locationRecord struct {
	DriverID  int       `json:"driver_id"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Fetch the stored driver location.
func (s *RedisLocationStore) Latest(ctx context.Context) (_ domain.DriverLocation, _ bool, err error) {
	defer obs.Time(ctx, "location.cache.Latest")(&err)

	if s.Client == nil {
		return domain.DriverLocation{}, false, errors.New("location cache: redis client is nil")
	}

	raw, err := s.Client.Get(ctx, s.Key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.DriverLocation{}, false, nil
	}
	if err != nil {
		return domain.DriverLocation{}, false, fmt.Errorf("get location cache key=%q: %w", s.Key, err)
	}

	var rec locationRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return domain.DriverLocation{}, false, fmt.Errorf("decode location cache key=%q: %w", s.Key, err)
	}

	return domain.DriverLocation{
		DriverID:   rec.DriverID,
		Coordinate: domain.Coordinate{Latitude: rec.Latitude, Longitude: rec.Longitude},
		UpdatedAt:  rec.UpdatedAt,
	}, true, nil
}

// Store the driver location, replacing any previous value.
func (s *RedisLocationStore) Upsert(ctx context.Context, loc domain.DriverLocation) (_ domain.DriverLocation, err error) {
	defer obs.Time(ctx, "location.cache.Upsert")(&err)

	if s.Client == nil {
		return domain.DriverLocation{}, errors.New("location cache: redis client is nil")
	}

	payload, err := json.Marshal(locationRecord{
		DriverID:  loc.DriverID,
		Latitude:  loc.Coordinate.Latitude,
		Longitude: loc.Coordinate.Longitude,
		UpdatedAt: loc.UpdatedAt,
	})
	if err != nil {
		return domain.DriverLocation{}, fmt.Errorf("encode location: %w", err)
	}

	if err := s.Client.Set(ctx, s.Key, payload, 0).Err(); err != nil {
		return domain.DriverLocation{}, fmt.Errorf("set location cache key=%q: %w", s.Key, err)
	}

	loc.IsDefault = false
	return loc, nil
}
