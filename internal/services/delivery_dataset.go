package services

import (
	"context"
	"delivery-route-service/internal/domain"
	"delivery-route-service/internal/platform/obs"
	"delivery-route-service/internal/ports"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Dataset is the optimizer input: the route origin and the routable stops.
type Dataset struct {
	Origin         domain.DriverLocation
	Stops          []domain.DeliveryStop
	SkippedOrders  []int
	ExplicitSubset bool
}

// DatasetAssembler resolves the route origin and candidate stops from the record store.
// It never writes.
type DatasetAssembler struct {
	Orders     ports.OrderRepository
	Locations  ports.LocationStore
	DefaultHub domain.Coordinate
}

// Assemble gathers the origin and stops for a route.
//
// With a non-empty orderIDs the exact orders are fetched regardless of status;
// otherwise every order in a deliverable status is a candidate. Orders whose
// address is not geocoded are dropped and reported in SkippedOrders.
func (a *DatasetAssembler) Assemble(ctx context.Context, orderIDs []int) (_ Dataset, err error) {
	defer obs.Time(ctx, "dataset.Assemble")(&err)

	if a.Orders == nil || a.Locations == nil {
		return Dataset{}, errors.New("assemble dataset: repositories must be non-nil")
	}

	var (
		origin domain.DriverLocation
		orders []*domain.Order
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		loc, err := ResolveOrigin(gctx, a.Locations, a.DefaultHub)
		if err != nil {
			return err
		}
		origin = loc
		return nil
	})

	g.Go(func() error {
		var err error
		if len(orderIDs) > 0 {
			orders, err = a.Orders.ListByIDs(gctx, orderIDs)
			if err != nil {
				return fmt.Errorf("list orders by id: %w", err)
			}
			return nil
		}

		orders, err = a.Orders.ListByStatuses(gctx, domain.DeliverableStatuses)
		if err != nil {
			return fmt.Errorf("list deliverable orders: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return Dataset{}, fmt.Errorf("assemble dataset: %w", err)
	}

	stops := make([]domain.DeliveryStop, 0, len(orders))
	skipped := []int{}
	for _, o := range orders {
		stop, ok := domain.NewDeliveryStop(o)
		if !ok {
			skipped = append(skipped, o.OrderID)
			continue
		}
		stops = append(stops, stop)
	}

	if len(skipped) > 0 {
		obs.Logger(ctx).WithField("order_ids", skipped).Debug("orders without coordinates excluded from route")
	}

	return Dataset{
		Origin:         origin,
		Stops:          stops,
		SkippedOrders:  skipped,
		ExplicitSubset: len(orderIDs) > 0,
	}, nil
}

// ResolveOrigin returns the latest driver location, or the default hub when
// no location has been recorded yet.
func ResolveOrigin(ctx context.Context, store ports.LocationStore, defaultHub domain.Coordinate) (domain.DriverLocation, error) {
	loc, ok, err := store.Latest(ctx)
	if err != nil {
		return domain.DriverLocation{}, fmt.Errorf("resolve origin: latest driver location: %w", err)
	}
	if !ok {
		return domain.DriverLocation{
			DriverID:   domain.DriverID,
			Coordinate: defaultHub,
			IsDefault:  true,
		}, nil
	}
	return loc, nil
}
