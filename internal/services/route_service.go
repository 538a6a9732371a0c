package services

import (
	"context"
	"delivery-route-service/internal/domain"
	"delivery-route-service/internal/platform/obs"
	"fmt"
)

// RouteService runs the assemble -> optimize pipeline. Every call is independent;
// nothing is cached between requests.
type RouteService struct {
	Assembler       *DatasetAssembler
	AverageSpeedKmh float64
}

// PlannedRoute is a computed route together with the optimizer detail.
type PlannedRoute struct {
	Route         domain.Route
	Result        RouteResult
	Origin        domain.DriverLocation
	SkippedOrders []int
}

// Plan computes a fresh route for the explicit order subset, or for every
// deliverable order when orderIDs is empty.
func (s *RouteService) Plan(ctx context.Context, orderIDs []int) (_ *PlannedRoute, err error) {
	defer obs.Time(ctx, "route.Plan")(&err)

	ds, err := s.Assembler.Assemble(ctx, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("plan route: %w", err)
	}

	result := OptimizeRoute(ds.Origin.Coordinate, ds.Stops, s.AverageSpeedKmh)

	return &PlannedRoute{
		Route: domain.Route{
			Hub:   ds.Origin.Coordinate,
			Stops: result.Stops,
			Stats: result.Stats(),
		},
		Result:        result,
		Origin:        ds.Origin,
		SkippedOrders: ds.SkippedOrders,
	}, nil
}
