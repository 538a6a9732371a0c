package repositories

import (
	"context"
	"database/sql"
	"delivery-route-service/internal/domain"
	"delivery-route-service/internal/platform/obs"
	"errors"
	"fmt"
	"time"
)

// PostgreSQL-backed implementation of the OrderRepository and PaymentRepository ports.
type PostgresOrderRepository struct{ DB *sql.DB }

func NewPostgresOrderRepository(db *sql.DB) *PostgresOrderRepository {
	return &PostgresOrderRepository{DB: db}
}

const selectOrders = `
	SELECT
		o.order_id,
		o.order_status,
		o.total_amount::float8,
		o.created_at,
		c.customer_id,
		c.name,
		c.email,
		a.address_id,
		a.address_line1,
		a.city,
		a.latitude,
		a.longitude
	FROM orders o
	LEFT JOIN customers c ON c.customer_id = o.customer_id
	LEFT JOIN addresses a ON a.address_id = o.address_id
	`

// Return exactly the requested orders, whatever their status.
func (s *PostgresOrderRepository) ListByIDs(ctx context.Context, ids []int) (_ []*domain.Order, err error) {
	defer obs.Time(ctx, "orders.ListByIDs")(&err)

	if s.DB == nil {
		return nil, errors.New("postgres order repository: DB is nil")
	}

	if len(ids) == 0 {
		return []*domain.Order{}, nil
	}

	q := selectOrders + `
	WHERE o.order_id = ANY($1::bigint[])
	ORDER BY o.order_id;
	`

	return s.queryOrders(ctx, "list orders by id", q, toInt64s(ids))
}

// Return all orders whose status is one of statuses.
func (s *PostgresOrderRepository) ListByStatuses(ctx context.Context, statuses []domain.OrderStatus) (_ []*domain.Order, err error) {
	defer obs.Time(ctx, "orders.ListByStatuses")(&err)

	if s.DB == nil {
		return nil, errors.New("postgres order repository: DB is nil")
	}

	if len(statuses) == 0 {
		return []*domain.Order{}, nil
	}

	names := make([]string, 0, len(statuses))
	for _, st := range statuses {
		names = append(names, string(st))
	}

	q := selectOrders + `
	WHERE o.order_status = ANY($1::text[])
	ORDER BY o.order_id;
	`

	return s.queryOrders(ctx, "list orders by status", q, names)
}

func (s *PostgresOrderRepository) GetOrder(ctx context.Context, id int) (*domain.Order, error) {
	orders, err := s.ListByIDs(ctx, []int{id})
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if len(orders) == 0 {
		return nil, domain.ErrOrderNotFound
	}
	return orders[0], nil
}

func (s *PostgresOrderRepository) UpdateStatus(ctx context.Context, id int, status domain.OrderStatus) (err error) {
	defer obs.Time(ctx, "orders.UpdateStatus")(&err)

	if s.DB == nil {
		return errors.New("postgres order repository: DB is nil")
	}

	res, err := s.DB.ExecContext(ctx, `
	UPDATE orders
	SET order_status = $1
	WHERE order_id = $2;
	`, string(status), id)
	if err != nil {
		return fmt.Errorf("update order status: order_id=%d: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update order status: rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrOrderNotFound
	}

	return nil
}

// Mark every payment row of the order as successful. Safe to repeat.
func (s *PostgresOrderRepository) MarkSettled(ctx context.Context, orderID int) (err error) {
	defer obs.Time(ctx, "payments.MarkSettled")(&err)

	if s.DB == nil {
		return errors.New("postgres order repository: DB is nil")
	}

	_, err = s.DB.ExecContext(ctx, `
	UPDATE payments
	SET status = $1
	WHERE order_id = $2;
	`, domain.PaymentStatusSuccess, orderID)
	if err != nil {
		return fmt.Errorf("mark payment settled: order_id=%d: %w", orderID, err)
	}

	return nil
}

func (s *PostgresOrderRepository) queryOrders(ctx context.Context, op string, q string, arg any) ([]*domain.Order, error) {
	rows, err := s.DB.QueryContext(ctx, q, arg)
	if err != nil {
		return nil, fmt.Errorf("%s: query orders table: %w", op, err)
	}
	defer rows.Close()

	orders := make([]*domain.Order, 0, 64)
	byID := make(map[int]*domain.Order)
	for rows.Next() {
		var (
			o          domain.Order
			status     string
			createdAt  time.Time
			customerID sql.NullInt64
			name       sql.NullString
			email      sql.NullString
			addressID  sql.NullInt64
			line1      sql.NullString
			city       sql.NullString
			lat        sql.NullFloat64
			lon        sql.NullFloat64
		)
		if err := rows.Scan(
			&o.OrderID, &status, &o.TotalAmount, &createdAt,
			&customerID, &name, &email,
			&addressID, &line1, &city, &lat, &lon,
		); err != nil {
			return nil, fmt.Errorf("%s: scan row: %w", op, err)
		}

		o.Status = domain.OrderStatus(status)
		o.CreatedAt = createdAt
		o.Customer = domain.Customer{
			CustomerID: int(customerID.Int64),
			Name:       name.String,
			Email:      email.String,
		}
		o.Address = domain.Address{
			AddressID:    int(addressID.Int64),
			AddressLine1: line1.String,
			City:         city.String,
			Latitude:     nullableFloat(lat),
			Longitude:    nullableFloat(lon),
		}

		orders = append(orders, &o)
		byID[o.OrderID] = &o
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: row iteration: %w", op, err)
	}

	if err := s.attachPayments(ctx, byID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return orders, nil
}

func (s *PostgresOrderRepository) attachPayments(ctx context.Context, byID map[int]*domain.Order) error {
	if len(byID) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(byID))
	for id := range byID {
		ids = append(ids, int64(id))
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT
		payment_id,
		order_id,
		payment_method,
		status,
		amount::float8,
		COALESCE(transaction_id, '')
	FROM payments
	WHERE order_id = ANY($1::bigint[])
	ORDER BY payment_id;
	`, ids)
	if err != nil {
		return fmt.Errorf("query payments table: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p domain.Payment
		if err := rows.Scan(&p.PaymentID, &p.OrderID, &p.Method, &p.Status, &p.Amount, &p.TransactionID); err != nil {
			return fmt.Errorf("scan payment row: %w", err)
		}
		if o, ok := byID[p.OrderID]; ok {
			o.Payments = append(o.Payments, p)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("payment row iteration: %w", err)
	}

	return nil
}

func nullableFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func toInt64s(ids []int) []int64 {
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		out = append(out, int64(id))
	}
	return out
}
