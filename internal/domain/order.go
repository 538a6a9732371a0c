package domain

import (
	"strings"
	"time"
)

// OrderStatus is the lifecycle state of an order.
//
// The set is not closed: any non-empty value is persisted as-is, the presentation
// layer decides which transitions to offer.
type OrderStatus string

const (
	StatusPending    OrderStatus = "PENDING"
	StatusPaid       OrderStatus = "PAID"
	StatusShipped    OrderStatus = "SHIPPED"
	StatusDelivering OrderStatus = "DELIVERING"
	StatusDelivered  OrderStatus = "DELIVERED"
	StatusCompleted  OrderStatus = "COMPLETED"
	StatusCancelled  OrderStatus = "CANCELLED"
)

// Statuses picked up by default route computation.
var DeliverableStatuses = []OrderStatus{StatusDelivering, StatusPaid, StatusShipped}

func ParseOrderStatus(s string) (OrderStatus, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return "", false
	}
	return OrderStatus(s), true
}

func (s OrderStatus) IsDeliverable() bool {
	for _, d := range DeliverableStatuses {
		if s == d {
			return true
		}
	}
	return false
}

// IsTerminal reports whether an order in this status leaves any active route.
func (s OrderStatus) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCompleted
}

type Customer struct {
	CustomerID int
	Name       string
	Email      string
}

// Delivery address. Latitude and Longitude are nil until the address is geocoded.
type Address struct {
	AddressID    int
	AddressLine1 string
	City         string
	Latitude     *float64
	Longitude    *float64
}

// Coordinate returns the address position, or false when it is not geocoded.
func (a Address) Coordinate() (Coordinate, bool) {
	if a.Latitude == nil || a.Longitude == nil {
		return Coordinate{}, false
	}
	return Coordinate{Latitude: *a.Latitude, Longitude: *a.Longitude}, true
}

const (
	PaymentMethodCard = "card"
	PaymentMethodCOD  = "cod"

	PaymentStatusPending = "pending"
	PaymentStatusSuccess = "success"
)

type Payment struct {
	PaymentID     int
	OrderID       int
	Method        string
	Status        string
	Amount        float64
	TransactionID string
}

// Order aggregate as read from the record store, with its joined projections.
type Order struct {
	OrderID     int
	Status      OrderStatus
	TotalAmount float64
	CreatedAt   time.Time
	Customer    Customer
	Address     Address
	Payments    []Payment
}

// IsCashOnDelivery reports whether the order has a cash-on-delivery payment attached.
func (o *Order) IsCashOnDelivery() bool {
	for _, p := range o.Payments {
		if p.Method == PaymentMethodCOD || p.Method == "cash" {
			return true
		}
	}
	return false
}
