package memory

import (
	"context"
	"delivery-route-service/internal/domain"
	"slices"
	"sync"
)

// OrderStore is an in-memory OrderRepository and PaymentRepository.
// It is safe for concurrent use; returned orders are copies.
type OrderStore struct {
	mu     sync.RWMutex
	orders map[int]*domain.Order
}

func NewOrderStore(orders ...*domain.Order) *OrderStore {
	s := &OrderStore{orders: make(map[int]*domain.Order, len(orders))}
	for _, o := range orders {
		s.orders[o.OrderID] = cloneOrder(o)
	}
	return s
}

// Put inserts or replaces an order.
func (s *OrderStore) Put(o *domain.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[o.OrderID] = cloneOrder(o)
}

func (s *OrderStore) ListByIDs(ctx context.Context, ids []int) ([]*domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	// Follow the order_id ordering a SQL store would return.
	sorted := slices.Clone(ids)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	out := make([]*domain.Order, 0, len(sorted))
	for _, id := range sorted {
		if o, ok := s.orders[id]; ok {
			out = append(out, cloneOrder(o))
		}
	}
	return out, nil
}

func (s *OrderStore) ListByStatuses(ctx context.Context, statuses []domain.OrderStatus) ([]*domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Order, 0, len(s.orders))
	for _, o := range s.orders {
		if slices.Contains(statuses, o.Status) {
			out = append(out, cloneOrder(o))
		}
	}
	slices.SortFunc(out, func(a, b *domain.Order) int { return a.OrderID - b.OrderID })
	return out, nil
}

func (s *OrderStore) GetOrder(ctx context.Context, id int) (*domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	return cloneOrder(o), nil
}

func (s *OrderStore) UpdateStatus(ctx context.Context, id int, status domain.OrderStatus) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[id]
	if !ok {
		return domain.ErrOrderNotFound
	}
	o.Status = status
	return nil
}

func (s *OrderStore) MarkSettled(ctx context.Context, orderID int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[orderID]
	if !ok {
		return nil
	}
	for i := range o.Payments {
		o.Payments[i].Status = domain.PaymentStatusSuccess
	}
	return nil
}

func cloneOrder(o *domain.Order) *domain.Order {
	c := *o
	c.Payments = slices.Clone(o.Payments)
	if o.Address.Latitude != nil {
		lat := *o.Address.Latitude
		c.Address.Latitude = &lat
	}
	if o.Address.Longitude != nil {
		lon := *o.Address.Longitude
		c.Address.Longitude = &lon
	}
	return &c
}
