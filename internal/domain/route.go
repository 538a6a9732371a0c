package domain

import "time"

// Read-only projection of an order awaiting delivery.
// A stop is never stored; it exists as long as its order is routable.
type DeliveryStop struct {
	OrderID      int
	CustomerName string
	AddressLine  string
	City         string
	Coordinate   Coordinate
	OrderStatus  OrderStatus
	TotalAmount  float64
}

// NewDeliveryStop projects an order onto a stop. It returns false when the
// order's address has no coordinates.
func NewDeliveryStop(o *Order) (DeliveryStop, bool) {
	c, ok := o.Address.Coordinate()
	if !ok {
		return DeliveryStop{}, false
	}
	return DeliveryStop{
		OrderID:      o.OrderID,
		CustomerName: o.Customer.Name,
		AddressLine:  o.Address.AddressLine1,
		City:         o.Address.City,
		Coordinate:   c,
		OrderStatus:  o.Status,
		TotalAmount:  o.TotalAmount,
	}, true
}

type RouteStats struct {
	TotalDistanceKm  float64
	EstimatedMinutes int
	StopCount        int
}

// Ephemeral visiting order computed from a hub and a stop set.
// Routes are recomputed per request and never persisted.
type Route struct {
	Hub   Coordinate
	Stops []DeliveryStop
	Stats RouteStats
}

// Single-driver position slot.
type DriverLocation struct {
	DriverID   int
	Coordinate Coordinate
	UpdatedAt  time.Time
	// IsDefault marks the configured fallback hub when no ping has been recorded.
	IsDefault bool
}

// DriverID is the fixed identifier of the only driver.
const DriverID = 1
