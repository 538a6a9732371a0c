package services

import (
	"delivery-route-service/internal/domain"
	"delivery-route-service/internal/geo"
	"fmt"
	"math"
)

// DefaultAverageSpeedKmh is the assumed city driving speed for time estimates.
const DefaultAverageSpeedKmh = 40.0

// RouteResult is the optimizer output. TotalDistanceKm keeps full precision;
// use RoundedDistanceKm or FormatDistance for reporting.
type RouteResult struct {
	Stops            []domain.DeliveryStop
	Legs             []float64
	TotalDistanceKm  float64
	EstimatedMinutes int
}

// Stats summarises the result with the distance rounded to 2 decimals.
func (r RouteResult) Stats() domain.RouteStats {
	return domain.RouteStats{
		TotalDistanceKm:  r.RoundedDistanceKm(),
		EstimatedMinutes: r.EstimatedMinutes,
		StopCount:        len(r.Stops),
	}
}

func (r RouteResult) RoundedDistanceKm() float64 {
	return math.Round(r.TotalDistanceKm*100) / 100
}

// FormatDistance renders a distance with exactly two decimals.
func FormatDistance(km float64) string {
	return fmt.Sprintf("%.2f", km)
}

// EstimateMinutes converts a distance into whole minutes at the given speed.
func EstimateMinutes(distanceKm, speedKmh float64) int {
	if speedKmh <= 0 {
		speedKmh = DefaultAverageSpeedKmh
	}
	return int(math.Round(distanceKm / speedKmh * 60))
}

// OptimizeRoute orders stops with a greedy nearest-neighbor tour starting at origin.
//
// At each step the closest unvisited stop by haversine distance is chosen.
// Equal distances keep the stop that appears first in the input, so the result
// is a pure function of (origin, stops). There is no improvement pass.
func OptimizeRoute(origin domain.Coordinate, stops []domain.DeliveryStop, speedKmh float64) RouteResult {
	if len(stops) == 0 {
		return RouteResult{
			Stops: []domain.DeliveryStop{},
			Legs:  []float64{},
		}
	}

	unvisited := make([]domain.DeliveryStop, len(stops))
	copy(unvisited, stops)

	route := make([]domain.DeliveryStop, 0, len(stops))
	legs := make([]float64, 0, len(stops))
	current := origin
	total := 0.0

	for len(unvisited) > 0 {
		nearestIdx := 0
		minDist := geo.Between(current, unvisited[0].Coordinate)

		// Greedy step: strict < keeps the earliest stop on ties.
		for i := 1; i < len(unvisited); i++ {
			d := geo.Between(current, unvisited[i].Coordinate)
			if d < minDist {
				minDist = d
				nearestIdx = i
			}
		}

		next := unvisited[nearestIdx]
		route = append(route, next)
		legs = append(legs, minDist)
		total += minDist
		current = next.Coordinate

		unvisited = append(unvisited[:nearestIdx], unvisited[nearestIdx+1:]...)
	}

	return RouteResult{
		Stops:            route,
		Legs:             legs,
		TotalDistanceKm:  total,
		EstimatedMinutes: EstimateMinutes(total, speedKmh),
	}
}
