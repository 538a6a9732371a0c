package ports

import "context"

// Port: payment records attached to orders.
type PaymentRepository interface {
	// Mark every payment of the order as settled. Idempotent; an order
	// without payment rows is not an error.
	MarkSettled(ctx context.Context, orderID int) error
}
