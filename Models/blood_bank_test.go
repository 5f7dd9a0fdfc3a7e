package Models

import (
	"math"
	"testing"
)

func floatPtr(v float64) *float64 {
	return &v
}

func TestHaversine(t *testing.T) {
	t.Run("ZeroDistanceForSamePoint", func(t *testing.T) {
		if d := Haversine(28.6139, 77.2090, 28.6139, 77.2090); d != 0 {
			t.Errorf("expected 0, got %f", d)
		}
	})

	t.Run("KnownDistance", func(t *testing.T) {
		// New Delhi to Mumbai, roughly 1150 km.
		d := Haversine(28.6139, 77.2090, 19.0760, 72.8777)
		if math.Abs(d-1150) > 20 {
			t.Errorf("expected roughly 1150 km, got %f", d)
		}
	})

	t.Run("Symmetric", func(t *testing.T) {
		a := Haversine(28.6139, 77.2090, 19.0760, 72.8777)
		b := Haversine(19.0760, 72.8777, 28.6139, 77.2090)
		if math.Abs(a-b) > 1e-9 {
			t.Errorf("distance not symmetric: %f vs %f", a, b)
		}
	})
}

func TestRankByDistance(t *testing.T) {
	banks := []BloodBank{
		{Name: "Far", Latitude: floatPtr(19.0760), Longitude: floatPtr(72.8777)},
		{Name: "NoCoords A"},
		{Name: "Near", Latitude: floatPtr(28.7041), Longitude: floatPtr(77.1025)},
		{Name: "NoCoords B", Latitude: floatPtr(10.0)},
	}

	ranked := RankByDistance(banks, 28.6139, 77.2090)

	if len(ranked) != len(banks) {
		t.Fatalf("expected %d banks, got %d", len(banks), len(ranked))
	}

	t.Run("AscendingByDistance", func(t *testing.T) {
		if ranked[0].Name != "Near" || ranked[1].Name != "Far" {
			t.Errorf("expected Near then Far, got %s then %s", ranked[0].Name, ranked[1].Name)
		}
		if ranked[0].Distance == nil || ranked[1].Distance == nil {
			t.Fatal("expected distances for banks with coordinates")
		}
		if *ranked[0].Distance > *ranked[1].Distance {
			t.Errorf("distances out of order: %f > %f", *ranked[0].Distance, *ranked[1].Distance)
		}
	})

	t.Run("MissingCoordinatesSortLast", func(t *testing.T) {
		if ranked[2].Distance != nil || ranked[3].Distance != nil {
			t.Error("expected nil distance for banks without full coordinates")
		}
	})

	t.Run("MissingCoordinatesKeepListingOrder", func(t *testing.T) {
		if ranked[2].Name != "NoCoords A" || ranked[3].Name != "NoCoords B" {
			t.Errorf("expected stable order for unrankable banks, got %s then %s",
				ranked[2].Name, ranked[3].Name)
		}
	})
}
