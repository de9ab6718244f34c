package services

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/twpayne/go-polyline"

	"eco-delivery-service/internal/cache"
	"eco-delivery-service/internal/domain"
	"eco-delivery-service/internal/emissions"
	"eco-delivery-service/internal/logging"
	"eco-delivery-service/internal/platform/obs"
	"eco-delivery-service/internal/ports"
)

// RouteMetricsConfig bounds external API usage per route: at most
// SampleCount * len(Categories) places lookups, issued by Workers
// goroutines at a time.
type RouteMetricsConfig struct {
	SampleCount int
	POIRadiusM  int
	Categories  []string
	Workers     int
	Vehicle     domain.VehicleType
}

// RouteMetricsService turns a depot loop into aggregate route metrics:
// distance, duration, CO2 and sensitive-zone exposure. Pathfinding itself is
// delegated to the directions backend; the value-add here is aggregation,
// emission modeling and the zone overlay.
type RouteMetricsService struct {
	directions ports.DirectionsProvider
	places     ports.PlacesProvider
	emissions  *emissions.Model
	zones      cache.ZoneCountCache
	cfg        RouteMetricsConfig
}

func NewRouteMetricsService(
	directions ports.DirectionsProvider,
	places ports.PlacesProvider,
	model *emissions.Model,
	zones cache.ZoneCountCache,
	cfg RouteMetricsConfig,
) *RouteMetricsService {
	if cfg.SampleCount <= 0 {
		cfg.SampleCount = 10
	}
	if cfg.POIRadiusM <= 0 {
		cfg.POIRadiusM = 100
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 5
	}
	return &RouteMetricsService{
		directions: directions,
		places:     places,
		emissions:  model,
		zones:      zones,
		cfg:        cfg,
	}
}

// RouteResult pairs the aggregate metrics with the raw per-leg breakdown so
// the planner can attribute segments to orders.
type RouteResult struct {
	Metrics domain.RouteMetrics
	Legs    []ports.DirectionsLeg
}

// GetRouteMetrics fetches and aggregates metrics for the loop
// depot -> stops... -> depot. The last element of stops is expected to close
// the loop at the depot; stop order is caller-determined and never
// re-optimized by the provider.
func (s *RouteMetricsService) GetRouteMetrics(
	ctx context.Context,
	depot domain.Coordinate,
	stops []domain.Coordinate,
) (_ RouteResult, err error) {
	defer obs.Time(ctx, "routemetrics.GetRouteMetrics")(&err)

	if len(stops) == 0 {
		return RouteResult{}, fmt.Errorf("route metrics: empty stop list: %w", domain.ErrInvalidInput)
	}
	if err := depot.Validate(); err != nil {
		return RouteResult{}, fmt.Errorf("route metrics: depot: %w", err)
	}

	destination := stops[len(stops)-1]
	waypoints := stops[:len(stops)-1]

	res, err := s.directions.Route(ctx, depot, destination, waypoints)
	if err != nil {
		return RouteResult{}, fmt.Errorf("route metrics: directions: %w", err)
	}

	var totalMeters, totalSeconds int
	for _, leg := range res.Legs {
		totalMeters += leg.DistanceMeters
		// Prefer the live traffic-adjusted duration when the backend has one.
		if leg.TrafficDurationSeconds != nil {
			totalSeconds += *leg.TrafficDurationSeconds
		} else {
			totalSeconds += leg.DurationSeconds
		}
	}

	distanceKm := float64(totalMeters) / 1000.0

	co2g, err := s.emissions.CO2Grams(distanceKm, s.cfg.Vehicle)
	if err != nil {
		return RouteResult{}, fmt.Errorf("route metrics: emissions: %w", err)
	}

	path, err := decodePolyline(res.OverviewPolyline)
	if err != nil {
		return RouteResult{}, fmt.Errorf("route metrics: %w", err)
	}

	zoneCount := s.sampleZones(ctx, path)

	return RouteResult{
		Metrics: domain.RouteMetrics{
			DistanceKm:         distanceKm,
			DurationSec:        totalSeconds,
			CO2G:               co2g,
			SensitiveZoneCount: zoneCount,
			Polyline:           path,
		},
		Legs: res.Legs,
	}, nil
}

// CO2ForDistance exposes the service's emission model for callers that
// already hold a distance.
func (s *RouteMetricsService) CO2ForDistance(distanceKm float64) (float64, error) {
	return s.emissions.CO2Grams(distanceKm, s.cfg.Vehicle)
}

// sampleZones counts sensitive sites near a bounded number of points evenly
// spaced along the decoded geometry. The path is sampled, not the whole
// corridor; per-sample lookups that fail read as zero so a flaky places
// backend never sinks the route.
func (s *RouteMetricsService) sampleZones(ctx context.Context, path []domain.Coordinate) int {
	if len(path) == 0 || s.places == nil {
		return 0
	}

	step := len(path) / s.cfg.SampleCount
	if step < 1 {
		step = 1
	}

	samples := make([]domain.Coordinate, 0, s.cfg.SampleCount+1)
	for i := 0; i < len(path); i += step {
		samples = append(samples, path[i])
	}

	type lookup struct {
		point    domain.Coordinate
		category string
	}

	var pending []lookup
	total := 0
	for _, p := range samples {
		for _, cat := range s.cfg.Categories {
			if s.zones != nil {
				if count, ok := s.zones.Get(ctx, cache.Key(p, cat)); ok {
					total += count
					continue
				}
			}
			pending = append(pending, lookup{point: p, category: cat})
		}
	}

	if len(pending) == 0 {
		return total
	}

	// Bounded fan-out: the sampling loop dominates external call volume, so
	// it runs through a fixed-width worker pool instead of sequentially.
	sem := make(chan struct{}, s.cfg.Workers)
	counts := make(chan int, len(pending))
	var wg sync.WaitGroup

	for _, lk := range pending {
		wg.Add(1)
		go func(lk lookup) {
			sem <- struct{}{}
			defer wg.Done()
			defer func() { <-sem }()

			count, err := s.places.NearbyCount(ctx, lk.point, s.cfg.POIRadiusM, lk.category)
			if err != nil {
				logging.L().Warnw("zone lookup failed",
					"category", lk.category, "lat", lk.point.Lat, "lng", lk.point.Lng, "error", err)
				counts <- 0
				return
			}

			if s.zones != nil {
				s.zones.Set(ctx, cache.Key(lk.point, lk.category), count)
			}
			counts <- count
		}(lk)
	}

	wg.Wait()
	close(counts)

	for c := range counts {
		total += c
	}
	return total
}

// ZonesNear counts sensitive sites around a single point across all
// configured categories, through the same cache as route sampling.
func (s *RouteMetricsService) ZonesNear(ctx context.Context, point domain.Coordinate) int {
	if s.places == nil {
		return 0
	}

	total := 0
	for _, cat := range s.cfg.Categories {
		if s.zones != nil {
			if count, ok := s.zones.Get(ctx, cache.Key(point, cat)); ok {
				total += count
				continue
			}
		}

		count, err := s.places.NearbyCount(ctx, point, s.cfg.POIRadiusM, cat)
		if err != nil {
			logging.L().Warnw("zone lookup failed",
				"category", cat, "lat", point.Lat, "lng", point.Lng, "error", err)
			continue
		}
		if s.zones != nil {
			s.zones.Set(ctx, cache.Key(point, cat), count)
		}
		total += count
	}
	return total
}

// AQINear returns the air quality index at point when the places backend
// exposes one, zero otherwise.
func (s *RouteMetricsService) AQINear(ctx context.Context, point domain.Coordinate) int {
	aq, ok := s.places.(ports.AirQualityProvider)
	if !ok {
		return 0
	}

	aqi, err := aq.AQI(ctx, point)
	if err != nil {
		logging.L().Warnw("aqi lookup failed", "lat", point.Lat, "lng", point.Lng, "error", err)
		return 0
	}
	return aqi
}

func decodePolyline(encoded string) ([]domain.Coordinate, error) {
	if encoded == "" {
		return nil, nil
	}

	coords, _, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, fmt.Errorf("decode polyline: %w", err)
	}

	path := make([]domain.Coordinate, 0, len(coords))
	for _, c := range coords {
		if len(c) != 2 || math.IsNaN(c[0]) || math.IsNaN(c[1]) {
			continue
		}
		path = append(path, domain.Coordinate{Lat: c[0], Lng: c[1]})
	}
	return path, nil
}
