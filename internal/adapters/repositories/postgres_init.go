package repositories

import (
	"context"
	"database/sql"
	"delivery-route-service/internal/seed"
	"errors"
	"fmt"
	"strings"
)

// Initialize the PostgreSQL database schema.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createCustomersQuery := `
	CREATE TABLE IF NOT EXISTS customers (
		customer_id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		phone TEXT
	);
	`

	createAddressesQuery := `
	CREATE TABLE IF NOT EXISTS addresses (
		address_id BIGSERIAL PRIMARY KEY,
		customer_id BIGINT REFERENCES customers(customer_id),
		address_line1 TEXT NOT NULL,
		city TEXT NOT NULL DEFAULT '',
		country TEXT NOT NULL DEFAULT 'United Kingdom',
		latitude DOUBLE PRECISION,
		longitude DOUBLE PRECISION
	);
	`

	createOrdersQuery := `
	CREATE TABLE IF NOT EXISTS orders (
		order_id BIGSERIAL PRIMARY KEY,
		customer_id BIGINT REFERENCES customers(customer_id),
		address_id BIGINT REFERENCES addresses(address_id),
		total_amount NUMERIC(10, 2) NOT NULL DEFAULT 0,
		order_status TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`

	createPaymentsQuery := `
	CREATE TABLE IF NOT EXISTS payments (
		payment_id BIGSERIAL PRIMARY KEY,
		order_id BIGINT NOT NULL REFERENCES orders(order_id),
		amount NUMERIC(10, 2) NOT NULL,
		status TEXT NOT NULL,
		payment_method TEXT NOT NULL,
		transaction_id TEXT
	);
	`

	createDriverLocationsQuery := `
	CREATE TABLE IF NOT EXISTS driver_locations (
		driver_id INTEGER PRIMARY KEY,
		latitude DOUBLE PRECISION NOT NULL,
		longitude DOUBLE PRECISION NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_orders_order_status
	ON orders(order_status);
	`

	createPaymentIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_payments_order_id
	ON payments(order_id);
	`

	statements := []string{
		createCustomersQuery,
		createAddressesQuery,
		createOrdersQuery,
		createPaymentsQuery,
		createDriverLocationsQuery,
		createIndexQuery,
		createPaymentIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Populate the database with order data from a JSON file and return the
// created order ids.
func SeedFromJSON(ctx context.Context, db *sql.DB, jsonPath string) ([]int, error) {
	data, err := seed.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("seed orders: %w", err)
	}

	return SeedOrders(ctx, db, data)
}

// SeedOrders inserts customers, addresses, orders and payments in one transaction
// and returns the created order ids.
func SeedOrders(ctx context.Context, db *sql.DB, seeds []seed.Order) ([]int, error) {
	if err := seed.Validate(seeds); err != nil {
		return nil, fmt.Errorf("seed orders: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("seed orders: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	ids := make([]int, 0, len(seeds))
	for i, s := range seeds {
		var customerID int
		err := tx.QueryRowContext(ctx, `
		INSERT INTO customers (name, email)
		VALUES ($1, $2)
		ON CONFLICT (email) DO UPDATE
		SET name = EXCLUDED.name
		RETURNING customer_id;
		`, s.CustomerName, s.CustomerEmail).Scan(&customerID)
		if err != nil {
			return nil, fmt.Errorf("seed orders: upsert customer at index %d: %w", i+1, err)
		}

		var addressID int
		err = tx.QueryRowContext(ctx, `
		INSERT INTO addresses (customer_id, address_line1, city, latitude, longitude)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING address_id;
		`, customerID, s.AddressLine1, s.City, s.Latitude, s.Longitude).Scan(&addressID)
		if err != nil {
			return nil, fmt.Errorf("seed orders: insert address at index %d: %w", i+1, err)
		}

		status := strings.ToUpper(strings.TrimSpace(s.Status))

		var orderID int
		err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (customer_id, address_id, total_amount, order_status)
		VALUES ($1, $2, $3, $4)
		RETURNING order_id;
		`, customerID, addressID, s.TotalAmount, status).Scan(&orderID)
		if err != nil {
			return nil, fmt.Errorf("seed orders: insert order at index %d: %w", i+1, err)
		}

		method := strings.ToLower(strings.TrimSpace(s.PaymentMethod))
		if method != "" {
			payStatus := seed.PaymentStatus(method, status)
			_, err = tx.ExecContext(ctx, `
			INSERT INTO payments (order_id, amount, status, payment_method, transaction_id)
			VALUES ($1, $2, $3, $4, $5);
			`, orderID, s.TotalAmount, payStatus, method, fmt.Sprintf("%s_seed_%d", method, orderID))
			if err != nil {
				return nil, fmt.Errorf("seed orders: insert payment for order_id=%d: %w", orderID, err)
			}
		}

		ids = append(ids, orderID)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("seed orders: commit tx: %w", err)
	}

	return ids, nil
}
