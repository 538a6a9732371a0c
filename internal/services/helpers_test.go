package services

import (
	"context"
	"delivery-route-service/internal/domain"
	"errors"
)

func geocodedOrder(id int, status domain.OrderStatus, lat, lon float64) *domain.Order {
	return &domain.Order{
		OrderID:     id,
		Status:      status,
		TotalAmount: 10,
		Customer:    domain.Customer{CustomerID: id, Name: "Customer"},
		Address: domain.Address{
			AddressID:    id,
			AddressLine1: "1 High Street",
			City:         "Edinburgh",
			Latitude:     &lat,
			Longitude:    &lon,
		},
	}
}

var errStoreDown = errors.New("store unavailable")

type failingLocationStore struct{}

func (failingLocationStore) Latest(context.Context) (domain.DriverLocation, bool, error) {
	return domain.DriverLocation{}, false, errStoreDown
}

func (failingLocationStore) Upsert(context.Context, domain.DriverLocation) (domain.DriverLocation, error) {
	return domain.DriverLocation{}, errStoreDown
}

type failingPayments struct{}

func (failingPayments) MarkSettled(context.Context, int) error { return errStoreDown }
