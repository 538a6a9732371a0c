package ports

import (
	"context"
	"delivery-route-service/internal/domain"
)

// Port: a boundary for reading and updating Order records with their
// customer, address and payment projections.
type OrderRepository interface {
	// Retrieve exactly the given orders regardless of status.
	ListByIDs(ctx context.Context, ids []int) ([]*domain.Order, error)
	// Retrieve all orders whose status is in statuses, ordered by order id.
	ListByStatuses(ctx context.Context, statuses []domain.OrderStatus) ([]*domain.Order, error)
	// Retrieve one order. Returns domain.ErrOrderNotFound when absent.
	GetOrder(ctx context.Context, id int) (*domain.Order, error)
	// Persist a new status. Returns domain.ErrOrderNotFound when absent.
	UpdateStatus(ctx context.Context, id int, status domain.OrderStatus) error
}
