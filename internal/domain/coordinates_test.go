package domain

import (
	"math"
	"testing"
)

func TestDistanceSymmetry(t *testing.T) {
	pairs := []struct {
		name string
		a, b Coordinate
	}{
		{"equator", Coordinate{0, 0}, Coordinate{0.005, 0.005}},
		{"mid latitude", Coordinate{40.7128, -74.0060}, Coordinate{40.7306, -73.9352}},
		{"antimeridian", Coordinate{10, 179.9}, Coordinate{10, -179.9}},
	}

	for _, p := range pairs {
		ab := p.a.DistanceKm(p.b)
		ba := p.b.DistanceKm(p.a)
		if math.Abs(ab-ba) > 1e-9 {
			t.Errorf("%s: distance not symmetric: %v vs %v", p.name, ab, ba)
		}
	}
}

func TestDistanceIdentity(t *testing.T) {
	c := Coordinate{Lat: 52.52, Lng: 13.405}
	if d := c.DistanceKm(c); d != 0 {
		t.Errorf("distance(a,a) = %v, want 0", d)
	}
}

func TestDistanceKnownValue(t *testing.T) {
	// Depot at origin, stop at (0.005, 0.005): roughly 780 m.
	depot := Coordinate{0, 0}
	stop := Coordinate{0.005, 0.005}

	m := depot.DistanceM(stop)
	if m < 700 || m > 850 {
		t.Errorf("distance = %v m, want ~780 m", m)
	}
}

func TestCoordinateValidate(t *testing.T) {
	cases := []struct {
		name    string
		c       Coordinate
		wantErr bool
	}{
		{"valid", Coordinate{45, 90}, false},
		{"lat boundary", Coordinate{90, 180}, false},
		{"lat out of range", Coordinate{91, 0}, true},
		{"lng out of range", Coordinate{0, -181}, true},
		{"nan", Coordinate{math.NaN(), 0}, true},
	}

	for _, tc := range cases {
		err := tc.c.Validate()
		if (err != nil) != tc.wantErr {
			t.Errorf("%s: Validate() = %v, wantErr=%v", tc.name, err, tc.wantErr)
		}
	}
}

func TestNearestWarehouse(t *testing.T) {
	warehouses := []Warehouse{
		{ID: "w1", Location: Address{Coordinate: Coordinate{0, 0}}},
		{ID: "w2", Location: Address{Coordinate: Coordinate{1, 1}}},
	}

	w, err := NearestWarehouse(warehouses, Coordinate{0.9, 0.9})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.ID != "w2" {
		t.Errorf("nearest = %q, want w2", w.ID)
	}

	if _, err := NearestWarehouse(nil, Coordinate{}); err != ErrNoWarehouse {
		t.Errorf("expected ErrNoWarehouse, got %v", err)
	}
}
