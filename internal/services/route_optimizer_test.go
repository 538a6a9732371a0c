package services

import (
	"delivery-route-service/internal/domain"
	"delivery-route-service/internal/geo"
	"math"
	"slices"
	"testing"
)

func stopAt(id int, lat, lon float64) domain.DeliveryStop {
	return domain.DeliveryStop{OrderID: id, Coordinate: domain.Coordinate{Latitude: lat, Longitude: lon}}
}

func orderIDsOf(stops []domain.DeliveryStop) []int {
	ids := make([]int, 0, len(stops))
	for _, s := range stops {
		ids = append(ids, s.OrderID)
	}
	return ids
}

func TestOptimizeRouteNearestNeighbor(t *testing.T) {
	hub := domain.Coordinate{Latitude: 0, Longitude: 0}
	stops := []domain.DeliveryStop{
		stopAt(1, 0, 0.01), // A
		stopAt(2, 0, 0.03), // B
		stopAt(3, 0, 0.02), // C
	}

	res := OptimizeRoute(hub, stops, DefaultAverageSpeedKmh)

	if got := orderIDsOf(res.Stops); !slices.Equal(got, []int{1, 3, 2}) {
		t.Fatalf("order = %v, want [1 3 2]", got)
	}

	want := geo.DistanceKm(0, 0, 0, 0.03)
	if math.Abs(res.TotalDistanceKm-want) > 1e-9 {
		t.Fatalf("distance = %f, want %f", res.TotalDistanceKm, want)
	}
	if res.EstimatedMinutes != 5 {
		t.Fatalf("minutes = %d, want 5", res.EstimatedMinutes)
	}
	if s := res.Stats(); s.StopCount != 3 || s.TotalDistanceKm != 3.34 {
		t.Fatalf("stats = %+v", s)
	}
}

func TestOptimizeRouteTotalIsSumOfLegs(t *testing.T) {
	hub := domain.Coordinate{Latitude: 55.9533, Longitude: -3.1883}
	stops := []domain.DeliveryStop{
		stopAt(10, 55.9486, -3.2008),
		stopAt(11, 55.9445, -3.1619),
		stopAt(12, 55.9766, -3.1727),
		stopAt(13, 55.9322, -3.2153),
		stopAt(14, 55.9553, -3.1883),
	}

	res := OptimizeRoute(hub, stops, DefaultAverageSpeedKmh)

	if len(res.Legs) != len(res.Stops) {
		t.Fatalf("legs = %d, stops = %d", len(res.Legs), len(res.Stops))
	}

	prev := hub
	sum := 0.0
	for i, s := range res.Stops {
		d := geo.Between(prev, s.Coordinate)
		if math.Abs(d-res.Legs[i]) > 1e-12 {
			t.Fatalf("leg %d = %f, want %f", i, res.Legs[i], d)
		}
		sum += d
		prev = s.Coordinate
	}
	if math.Abs(sum-res.TotalDistanceKm) > 1e-9 {
		t.Fatalf("total = %f, sum of legs = %f", res.TotalDistanceKm, sum)
	}
	if res.EstimatedMinutes != int(math.Round(sum/40*60)) {
		t.Fatalf("minutes = %d for %f km", res.EstimatedMinutes, sum)
	}

	got := orderIDsOf(res.Stops)
	slices.Sort(got)
	if !slices.Equal(got, []int{10, 11, 12, 13, 14}) {
		t.Fatalf("route is not a permutation of the input: %v", got)
	}
}

func TestOptimizeRouteTieKeepsInputOrder(t *testing.T) {
	hub := domain.Coordinate{}
	east := stopAt(1, 0, 0.01)
	west := stopAt(2, 0, -0.01)

	if got := OptimizeRoute(hub, []domain.DeliveryStop{east, west}, 0).Stops[0].OrderID; got != 1 {
		t.Fatalf("first stop = %d, want 1", got)
	}
	if got := OptimizeRoute(hub, []domain.DeliveryStop{west, east}, 0).Stops[0].OrderID; got != 2 {
		t.Fatalf("first stop = %d, want 2", got)
	}
}

func TestOptimizeRouteIsDeterministic(t *testing.T) {
	hub := domain.Coordinate{Latitude: 55.95, Longitude: -3.19}
	stops := []domain.DeliveryStop{
		stopAt(1, 55.96, -3.20),
		stopAt(2, 55.94, -3.17),
		stopAt(3, 55.97, -3.18),
	}
	input := slices.Clone(stops)

	first := OptimizeRoute(hub, stops, DefaultAverageSpeedKmh)
	second := OptimizeRoute(hub, stops, DefaultAverageSpeedKmh)

	if !slices.Equal(orderIDsOf(first.Stops), orderIDsOf(second.Stops)) {
		t.Fatalf("routes differ: %v vs %v", orderIDsOf(first.Stops), orderIDsOf(second.Stops))
	}
	if first.TotalDistanceKm != second.TotalDistanceKm {
		t.Fatalf("distances differ: %f vs %f", first.TotalDistanceKm, second.TotalDistanceKm)
	}
	if !slices.Equal(stops, input) {
		t.Fatalf("input stops were modified")
	}
}

func TestOptimizeRouteEmpty(t *testing.T) {
	res := OptimizeRoute(domain.Coordinate{Latitude: 1, Longitude: 1}, nil, DefaultAverageSpeedKmh)

	if len(res.Stops) != 0 || res.TotalDistanceKm != 0 || res.EstimatedMinutes != 0 {
		t.Fatalf("unexpected result for empty input: %+v", res)
	}
	if res.Stops == nil {
		t.Fatalf("stops should be an empty slice, not nil")
	}
}

func TestOptimizeRouteStopOnHub(t *testing.T) {
	hub := domain.Coordinate{Latitude: 55.9533, Longitude: -3.1883}
	res := OptimizeRoute(hub, []domain.DeliveryStop{stopAt(7, hub.Latitude, hub.Longitude)}, DefaultAverageSpeedKmh)

	if res.TotalDistanceKm != 0 || res.EstimatedMinutes != 0 {
		t.Fatalf("distance = %f minutes = %d, want 0", res.TotalDistanceKm, res.EstimatedMinutes)
	}
}

func TestFormatDistance(t *testing.T) {
	cases := map[float64]string{
		0:        "0.00",
		3.33585:  "3.34",
		12.3:     "12.30",
		100.0049: "100.00",
	}
	for in, want := range cases {
		if got := FormatDistance(in); got != want {
			t.Fatalf("FormatDistance(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestEstimateMinutes(t *testing.T) {
	if got := EstimateMinutes(20, 40); got != 30 {
		t.Fatalf("got %d, want 30", got)
	}
	if got := EstimateMinutes(20, 0); got != 30 {
		t.Fatalf("non-positive speed should fall back to default, got %d", got)
	}
	if got := EstimateMinutes(10, 60); got != 10 {
		t.Fatalf("got %d, want 10", got)
	}
}
