package geo

import (
	"math"
	"testing"
)

func TestDistanceKm(t *testing.T) {
	tests := []struct {
		name             string
		lat1, lon1       float64
		lat2, lon2       float64
		wantKm           float64
		tolerancePercent float64
	}{
		{
			name: "Edinburgh to Glasgow",
			lat1: 55.9533, lon1: -3.1883,
			lat2: 55.8642, lon2: -4.2518,
			wantKm:           67.0,
			tolerancePercent: 1,
		},
		{
			name: "Same point",
			lat1: 55.9533, lon1: -3.1883,
			lat2: 55.9533, lon2: -3.1883,
			wantKm: 0,
		},
		{
			name: "One degree along the equator",
			lat1: 0, lon1: 0,
			lat2: 0, lon2: 1,
			wantKm:           111.19,
			tolerancePercent: 0.1,
		},
		{
			name: "London to Paris",
			lat1: 51.5074, lon1: -0.1278,
			lat2: 48.8566, lon2: 2.3522,
			wantKm:           343.5,
			tolerancePercent: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DistanceKm(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			if tt.wantKm == 0 {
				if got != 0 {
					t.Errorf("expected 0, got %f", got)
				}
				return
			}
			diff := math.Abs(got-tt.wantKm) / tt.wantKm * 100
			if diff > tt.tolerancePercent {
				t.Errorf("DistanceKm = %f km, want ~%f km (diff %.2f%%)", got, tt.wantKm, diff)
			}
		})
	}
}

func TestDistanceKmSymmetric(t *testing.T) {
	points := [][2]float64{
		{55.9533, -3.1883},
		{55.8467, -4.4236},
		{56.0711, -3.4532},
		{-33.8688, 151.2093},
	}

	for i, a := range points {
		for j, b := range points {
			ab := DistanceKm(a[0], a[1], b[0], b[1])
			ba := DistanceKm(b[0], b[1], a[0], a[1])
			if ab != ba {
				t.Errorf("asymmetric distance %d<->%d: %f vs %f", i, j, ab, ba)
			}
			if ab < 0 {
				t.Errorf("negative distance %d->%d: %f", i, j, ab)
			}
		}
	}
}
