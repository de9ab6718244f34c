package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"eco-delivery-service/internal/adapters/directions"
	"eco-delivery-service/internal/adapters/places"
	"eco-delivery-service/internal/cache"
	"eco-delivery-service/internal/domain"
	"eco-delivery-service/internal/emissions"
	"eco-delivery-service/internal/ports"
)

func newTestMetricsService(dir *directions.MockDirectionsProvider, pl ports.PlacesProvider, zones cache.ZoneCountCache) *RouteMetricsService {
	return NewRouteMetricsService(dir, pl, emissions.NewModel(nil, 0), zones, RouteMetricsConfig{
		SampleCount: 10,
		POIRadiusM:  100,
		Categories:  []string{"school", "hospital"},
		Workers:     5,
		Vehicle:     domain.VehiclePetrol,
	})
}

func TestGetRouteMetricsAggregates(t *testing.T) {
	svc := newTestMetricsService(&directions.MockDirectionsProvider{}, nil, nil)

	depot := coord(0, 0)
	res, err := svc.GetRouteMetrics(context.Background(), depot, []domain.Coordinate{coord(0.01, 0), depot})
	if err != nil {
		t.Fatalf("GetRouteMetrics: %v", err)
	}

	if len(res.Legs) != 2 {
		t.Fatalf("got %d legs, want 2", len(res.Legs))
	}
	// ~1.112 km out and the same back at 120 g/km.
	if res.Metrics.DistanceKm < 2.0 || res.Metrics.DistanceKm > 2.5 {
		t.Fatalf("DistanceKm = %v, want ~2.2", res.Metrics.DistanceKm)
	}
	wantCO2 := res.Metrics.DistanceKm * 120
	if diff := res.Metrics.CO2G - wantCO2; diff > 1e-6 || diff < -1e-6 {
		t.Fatalf("CO2G = %v, want %v", res.Metrics.CO2G, wantCO2)
	}
	if res.Metrics.DurationSec <= 0 {
		t.Fatalf("DurationSec = %d, want > 0", res.Metrics.DurationSec)
	}
	if len(res.Metrics.Polyline) == 0 {
		t.Fatal("decoded polyline is empty")
	}
}

func TestGetRouteMetricsCountsZones(t *testing.T) {
	pl := &places.MockPlacesProvider{CountPerCategory: map[string]int{"school": 2, "hospital": 1}}
	svc := newTestMetricsService(&directions.MockDirectionsProvider{}, pl, nil)

	depot := coord(0, 0)
	res, err := svc.GetRouteMetrics(context.Background(), depot, []domain.Coordinate{coord(0.01, 0), depot})
	if err != nil {
		t.Fatalf("GetRouteMetrics: %v", err)
	}

	// 3 polyline points, under the sample cap: every point sampled for both
	// categories.
	if want := 3 * 3; res.Metrics.SensitiveZoneCount != want {
		t.Fatalf("SensitiveZoneCount = %d, want %d", res.Metrics.SensitiveZoneCount, want)
	}
	if pl.Calls() == 0 {
		t.Fatal("places backend never consulted")
	}
}

func TestGetRouteMetricsZoneCacheSkipsLookups(t *testing.T) {
	pl := &places.MockPlacesProvider{CountPerCategory: map[string]int{"school": 1, "hospital": 1}}
	zones := cache.NewMemoryZoneCache(time.Minute)
	svc := newTestMetricsService(&directions.MockDirectionsProvider{}, pl, zones)

	depot := coord(0, 0)
	loop := []domain.Coordinate{coord(0.01, 0), depot}

	if _, err := svc.GetRouteMetrics(context.Background(), depot, loop); err != nil {
		t.Fatalf("first call: %v", err)
	}
	first := pl.Calls()

	if _, err := svc.GetRouteMetrics(context.Background(), depot, loop); err != nil {
		t.Fatalf("second call: %v", err)
	}
	if pl.Calls() != first {
		t.Fatalf("second identical route hit the backend: %d -> %d calls", first, pl.Calls())
	}
}

func TestGetRouteMetricsPlacesFailureReadsZero(t *testing.T) {
	pl := &places.MockPlacesProvider{Err: errors.New("quota exceeded")}
	svc := newTestMetricsService(&directions.MockDirectionsProvider{}, pl, nil)

	depot := coord(0, 0)
	res, err := svc.GetRouteMetrics(context.Background(), depot, []domain.Coordinate{coord(0.01, 0), depot})
	if err != nil {
		t.Fatalf("places failure must not fail the route: %v", err)
	}
	if res.Metrics.SensitiveZoneCount != 0 {
		t.Fatalf("SensitiveZoneCount = %d, want 0 on lookup failure", res.Metrics.SensitiveZoneCount)
	}
}

func TestGetRouteMetricsEmptyStops(t *testing.T) {
	svc := newTestMetricsService(&directions.MockDirectionsProvider{}, nil, nil)

	_, err := svc.GetRouteMetrics(context.Background(), coord(0, 0), nil)
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func TestAQINear(t *testing.T) {
	pl := &places.MockPlacesProvider{AQIValue: 87}
	svc := newTestMetricsService(&directions.MockDirectionsProvider{}, pl, nil)

	if got := svc.AQINear(context.Background(), coord(0, 0)); got != 87 {
		t.Fatalf("AQINear = %d, want 87", got)
	}

	// A backend without air quality support reads as zero.
	svcNoAQ := newTestMetricsService(&directions.MockDirectionsProvider{}, countOnlyPlaces{}, nil)
	if got := svcNoAQ.AQINear(context.Background(), coord(0, 0)); got != 0 {
		t.Fatalf("AQINear without provider = %d, want 0", got)
	}
}

// countOnlyPlaces implements NearbyCount but not AQI.
type countOnlyPlaces struct{}

func (countOnlyPlaces) NearbyCount(context.Context, domain.Coordinate, int, string) (int, error) {
	return 0, nil
}
