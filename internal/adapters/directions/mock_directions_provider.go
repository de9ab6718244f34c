package directions

import (
	"context"
	"math"

	"github.com/twpayne/go-polyline"

	"eco-delivery-service/internal/domain"
	"eco-delivery-service/internal/ports"
)

// MockDirectionsProvider synthesizes straight-line routes from great-circle
// distances at a fixed speed. Deterministic, for tests and offline runs.
type MockDirectionsProvider struct {
	// SpeedKmph defaults to 30 when zero.
	SpeedKmph float64
	// Err, when set, is returned by every call.
	Err error
	// Calls counts Route invocations (not goroutine-safe; fine for tests).
	Calls int
}

func (m *MockDirectionsProvider) Route(
	ctx context.Context,
	origin, destination domain.Coordinate,
	waypoints []domain.Coordinate,
) (ports.DirectionsResult, error) {
	m.Calls++
	if m.Err != nil {
		return ports.DirectionsResult{}, m.Err
	}

	speed := m.SpeedKmph
	if speed <= 0 {
		speed = 30
	}

	points := make([]domain.Coordinate, 0, 2+len(waypoints))
	points = append(points, origin)
	points = append(points, waypoints...)
	points = append(points, destination)

	out := ports.DirectionsResult{Legs: make([]ports.DirectionsLeg, 0, len(points)-1)}
	coords := make([][]float64, 0, len(points))
	for i := 0; i < len(points)-1; i++ {
		km := points[i].DistanceKm(points[i+1])
		out.Legs = append(out.Legs, ports.DirectionsLeg{
			DistanceMeters:  int(math.Round(km * 1000)),
			DurationSeconds: int(math.Round(km / speed * 3600)),
			Start:           points[i],
			End:             points[i+1],
		})
		coords = append(coords, []float64{points[i].Lat, points[i].Lng})
	}
	last := points[len(points)-1]
	coords = append(coords, []float64{last.Lat, last.Lng})

	out.OverviewPolyline = string(polyline.EncodeCoords(coords))
	return out, nil
}
