package services

import (
	"context"
	"delivery-route-service/internal/domain"
	"delivery-route-service/internal/platform/obs"
	"delivery-route-service/internal/ports"
	"errors"
	"fmt"
)

// StatusChange describes an applied status update.
type StatusChange struct {
	OrderID int
	Status  domain.OrderStatus
	// LeavesRoute is set for terminal statuses; the order must drop out of any active route.
	LeavesRoute bool
	// Warnings lists secondary side effects that failed. The status itself was persisted.
	Warnings []string
}

type sideEffect func(ctx context.Context, orderID int) error

// StatusService applies order status transitions and their side effects.
//
// Transitions are not validated against a graph: any non-empty status is
// persisted, the caller decides which transitions to offer.
type StatusService struct {
	Orders   ports.OrderRepository
	Payments ports.PaymentRepository
}

func (s *StatusService) sideEffects() map[domain.OrderStatus]sideEffect {
	return map[domain.OrderStatus]sideEffect{
		domain.StatusPaid: s.settlePayment,
	}
}

func (s *StatusService) settlePayment(ctx context.Context, orderID int) error {
	if s.Payments == nil {
		return errors.New("payment repository is nil")
	}
	return s.Payments.MarkSettled(ctx, orderID)
}

// SetStatus persists status on the order and runs its side effect, if any.
// A failing side effect is logged and reported as a warning; it never fails
// the call because the primary write has already committed.
func (s *StatusService) SetStatus(ctx context.Context, orderID int, status domain.OrderStatus) (_ *StatusChange, err error) {
	defer obs.Time(ctx, "status.SetStatus")(&err)

	if status == "" {
		return nil, fmt.Errorf("set status: %w", domain.ErrInvalidStatus)
	}

	if err := s.Orders.UpdateStatus(ctx, orderID, status); err != nil {
		return nil, fmt.Errorf("set status: order_id=%d: %w", orderID, err)
	}

	change := &StatusChange{
		OrderID:     orderID,
		Status:      status,
		LeavesRoute: status.IsTerminal(),
		Warnings:    []string{},
	}

	if effect, ok := s.sideEffects()[status]; ok {
		if err := effect(ctx, orderID); err != nil {
			obs.Logger(ctx).WithError(err).WithField("order_id", orderID).Warn("payment sync after status update failed")
			change.Warnings = append(change.Warnings, fmt.Sprintf("payment record not updated: %v", err))
		}
	}

	return change, nil
}

// CollectCash confirms cash collection for an unpaid cash-on-delivery order
// and moves it to PAID, which also settles its payment record.
func (s *StatusService) CollectCash(ctx context.Context, orderID int) (*StatusChange, error) {
	order, err := s.Orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("collect cash: order_id=%d: %w", orderID, err)
	}

	if order.Status != domain.StatusPending || !order.IsCashOnDelivery() {
		return nil, fmt.Errorf("collect cash: order_id=%d status=%s: %w", orderID, order.Status, domain.ErrNotCashOnDelivery)
	}

	return s.SetStatus(ctx, orderID, domain.StatusPaid)
}

// ReconcileRoute returns the explicit route that remains after change.
//
// Non-terminal changes, and orders outside the subset, leave active untouched.
// When dropping the order would empty the subset, useDefault is true and the
// caller should fall back to the default deliverable-order route.
func ReconcileRoute(active []int, change *StatusChange) (next []int, useDefault bool) {
	if len(active) == 0 {
		return nil, true
	}
	if change == nil || !change.LeavesRoute {
		return active, false
	}

	next, err := RemoveStop(active, change.OrderID)
	switch {
	case err == nil:
		return next, false
	case errors.Is(err, domain.ErrLastStop):
		return nil, true
	default:
		return active, false
	}
}
