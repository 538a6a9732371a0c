// Package seed reads and generates demo order data for the record stores.
package seed

import (
	"delivery-route-service/internal/domain"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"strings"

	"github.com/jaswdr/faker"
)

// Order is one seed row: a customer, their delivery address and an order
// with at most one payment.
type Order struct {
	CustomerName  string   `json:"customer_name"`
	CustomerEmail string   `json:"customer_email"`
	AddressLine1  string   `json:"address_line1"`
	City          string   `json:"city"`
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
	TotalAmount   float64  `json:"total_amount"`
	Status        string   `json:"order_status"`
	PaymentMethod string   `json:"payment_method"`
}

// ReadFile loads seed rows from a JSON array file.
func ReadFile(path string) ([]Order, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file %q: %w", path, err)
	}

	var data []Order
	if err := json.Unmarshal(bytes, &data); err != nil {
		return nil, fmt.Errorf("read seed file %q: parse json: %w", path, err)
	}

	if err := Validate(data); err != nil {
		return nil, err
	}
	return data, nil
}

// Validate checks the fields every store requires.
func Validate(seeds []Order) error {
	for i, item := range seeds {
		if strings.TrimSpace(item.CustomerEmail) == "" {
			return fmt.Errorf("seed item at index %d: customer_email cannot be empty", i+1)
		}
		if strings.TrimSpace(item.AddressLine1) == "" {
			return fmt.Errorf("seed item at index %d: address_line1 cannot be empty", i+1)
		}
		if strings.TrimSpace(item.Status) == "" {
			return fmt.Errorf("seed item at index %d: order_status cannot be empty", i+1)
		}
	}
	return nil
}

// PaymentStatus is the initial status of a seeded payment. Cash on delivery
// stays pending until the order is paid; everything else was captured at checkout.
func PaymentStatus(method, orderStatus string) string {
	method = strings.ToLower(strings.TrimSpace(method))
	if (method == domain.PaymentMethodCOD || method == "cash") &&
		strings.EqualFold(strings.TrimSpace(orderStatus), string(domain.StatusPending)) {
		return domain.PaymentStatusPending
	}
	return domain.PaymentStatusSuccess
}

// ToDomain converts seed rows into orders numbered from 1 in input order.
func ToDomain(seeds []Order) []*domain.Order {
	out := make([]*domain.Order, 0, len(seeds))
	for i, s := range seeds {
		id := i + 1
		status, ok := domain.ParseOrderStatus(s.Status)
		if !ok {
			status = domain.StatusPending
		}

		o := &domain.Order{
			OrderID:     id,
			Status:      status,
			TotalAmount: s.TotalAmount,
			Customer: domain.Customer{
				CustomerID: id,
				Name:       s.CustomerName,
				Email:      s.CustomerEmail,
			},
			Address: domain.Address{
				AddressID:    id,
				AddressLine1: s.AddressLine1,
				City:         s.City,
				Latitude:     s.Latitude,
				Longitude:    s.Longitude,
			},
		}

		if method := strings.ToLower(strings.TrimSpace(s.PaymentMethod)); method != "" {
			o.Payments = []domain.Payment{{
				PaymentID:     id,
				OrderID:       id,
				Method:        method,
				Status:        PaymentStatus(method, string(status)),
				Amount:        s.TotalAmount,
				TransactionID: fmt.Sprintf("%s_seed_%d", method, id),
			}}
		}
		out = append(out, o)
	}
	return out
}

var generatedStatuses = []string{
	string(domain.StatusPaid),
	string(domain.StatusShipped),
	string(domain.StatusDelivering),
	string(domain.StatusPending),
	string(domain.StatusCompleted),
}

// Generate produces n fake orders scattered within roughly 5 km of hub.
// About one in ten addresses is left without coordinates.
func Generate(n int, hub domain.Coordinate, city string, r *rand.Rand) []Order {
	fake := faker.NewWithSeed(rand.NewSource(r.Int63()))

	out := make([]Order, 0, n)
	for i := 0; i < n; i++ {
		person := fake.Person()
		status := generatedStatuses[r.Intn(len(generatedStatuses))]

		method := domain.PaymentMethodCard
		if r.Float64() < 0.3 {
			method = domain.PaymentMethodCOD
		}

		item := Order{
			CustomerName:  person.Name(),
			CustomerEmail: fmt.Sprintf("%d.%s", i+1, fake.Internet().Email()),
			AddressLine1:  fake.Address().StreetAddress(),
			City:          city,
			TotalAmount:   float64(r.Intn(9000)+500) / 100,
			Status:        status,
			PaymentMethod: method,
		}

		if r.Float64() >= 0.1 {
			lat := hub.Latitude + (r.Float64()-0.5)*0.09
			lon := hub.Longitude + (r.Float64()-0.5)*0.16
			item.Latitude = &lat
			item.Longitude = &lon
		}

		out = append(out, item)
	}
	return out
}
