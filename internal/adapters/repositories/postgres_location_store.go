package repositories

import (
	"context"
	"database/sql"
	"delivery-route-service/internal/domain"
	"delivery-route-service/internal/platform/obs"
	"errors"
	"fmt"
)

// PostgreSQL-backed driver position slot (one row per driver, upserted).
type PostgresLocationStore struct{ DB *sql.DB }

func NewPostgresLocationStore(db *sql.DB) *PostgresLocationStore {
	return &PostgresLocationStore{DB: db}
}

// Return the most recently updated driver location.
func (s *PostgresLocationStore) Latest(ctx context.Context) (_ domain.DriverLocation, _ bool, err error) {
	defer obs.Time(ctx, "locations.Latest")(&err)

	if s.DB == nil {
		return domain.DriverLocation{}, false, errors.New("postgres location store: DB is nil")
	}

	var loc domain.DriverLocation
	err = s.DB.QueryRowContext(ctx, `
	SELECT
		driver_id,
		latitude,
		longitude,
		updated_at
	FROM driver_locations
	ORDER BY updated_at DESC
	LIMIT 1;
	`).Scan(&loc.DriverID, &loc.Coordinate.Latitude, &loc.Coordinate.Longitude, &loc.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.DriverLocation{}, false, nil
	}
	if err != nil {
		return domain.DriverLocation{}, false, fmt.Errorf("latest driver location: %w", err)
	}

	return loc, true, nil
}

func (s *PostgresLocationStore) Upsert(ctx context.Context, loc domain.DriverLocation) (_ domain.DriverLocation, err error) {
	defer obs.Time(ctx, "locations.Upsert")(&err)

	if s.DB == nil {
		return domain.DriverLocation{}, errors.New("postgres location store: DB is nil")
	}

	var out domain.DriverLocation
	err = s.DB.QueryRowContext(ctx, `
	INSERT INTO driver_locations (driver_id, latitude, longitude, updated_at)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (driver_id) DO UPDATE
	SET latitude = EXCLUDED.latitude,
		longitude = EXCLUDED.longitude,
		updated_at = EXCLUDED.updated_at
	RETURNING driver_id, latitude, longitude, updated_at;
	`, loc.DriverID, loc.Coordinate.Latitude, loc.Coordinate.Longitude, loc.UpdatedAt).
		Scan(&out.DriverID, &out.Coordinate.Latitude, &out.Coordinate.Longitude, &out.UpdatedAt)
	if err != nil {
		return domain.DriverLocation{}, fmt.Errorf("upsert driver location driver_id=%d: %w", loc.DriverID, err)
	}

	return out, nil
}
