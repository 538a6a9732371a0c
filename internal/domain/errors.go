package domain

import "errors"

// Business rule violations. These are refusals, not transient faults.
var (
	ErrLastStop          = errors.New("cannot remove last stop from route")
	ErrStopNotInRoute    = errors.New("order is not part of the route")
	ErrOrderNotFound     = errors.New("order not found")
	ErrNotCashOnDelivery = errors.New("order is not an unpaid cash-on-delivery order")
	ErrEmptySelection    = errors.New("at least one order id is required")
	ErrInvalidStatus     = errors.New("status must not be empty")
)
