package services

import (
	"context"
	"delivery-route-service/internal/domain"
	"delivery-route-service/internal/platform/obs"
	"delivery-route-service/internal/ports"
	"fmt"
	"math"
	"strings"
)

type OrderSettlement struct {
	OrderID      int
	CustomerName string
	Status       domain.OrderStatus
	TotalAmount  float64
	Paid         float64
	Remaining    float64
}

// SettlementSummary is the money breakdown for a batch of orders, e.g. a driver run.
type SettlementSummary struct {
	OrderCount       int
	TotalOrderAmount float64
	TotalPaid        float64
	PaidByCard       float64
	PaidByCash       float64
	Remaining        float64
	Orders           []OrderSettlement
}

// SettlementService totals what has been collected for a set of orders.
type SettlementService struct {
	Orders ports.OrderRepository
}

// Summarize counts successful and pending payments as paid, split by card and
// cash methods. Amounts are rounded to 2 decimals; remaining never goes below 0.
func (s *SettlementService) Summarize(ctx context.Context, orderIDs []int) (_ *SettlementSummary, err error) {
	defer obs.Time(ctx, "settlement.Summarize")(&err)

	if len(orderIDs) == 0 {
		return nil, fmt.Errorf("summarize settlement: %w", domain.ErrEmptySelection)
	}

	orders, err := s.Orders.ListByIDs(ctx, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("summarize settlement: list orders: %w", err)
	}

	sum := &SettlementSummary{
		OrderCount: len(orders),
		Orders:     make([]OrderSettlement, 0, len(orders)),
	}

	for _, o := range orders {
		var paid, card, cash float64
		for _, p := range o.Payments {
			if p.Status != domain.PaymentStatusSuccess && p.Status != domain.PaymentStatusPending {
				continue
			}
			paid += p.Amount
			switch strings.ToLower(p.Method) {
			case "card", "stripe":
				card += p.Amount
			case "cod", "cash":
				cash += p.Amount
			}
		}

		sum.TotalOrderAmount += o.TotalAmount
		sum.TotalPaid += paid
		sum.PaidByCard += card
		sum.PaidByCash += cash

		name := o.Customer.Name
		if name == "" {
			name = "Unknown"
		}

		sum.Orders = append(sum.Orders, OrderSettlement{
			OrderID:      o.OrderID,
			CustomerName: name,
			Status:       o.Status,
			TotalAmount:  o.TotalAmount,
			Paid:         round2(paid),
			Remaining:    round2(math.Max(0, o.TotalAmount-paid)),
		})
	}

	sum.Remaining = round2(math.Max(0, sum.TotalOrderAmount-sum.TotalPaid))
	sum.TotalOrderAmount = round2(sum.TotalOrderAmount)
	sum.TotalPaid = round2(sum.TotalPaid)
	sum.PaidByCard = round2(sum.PaidByCard)
	sum.PaidByCash = round2(sum.PaidByCash)

	return sum, nil
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
