package ports

import (
	"context"

	"eco-delivery-service/internal/domain"
)

// One directed segment of a directions response.
type DirectionsLeg struct {
	DistanceMeters  int
	DurationSeconds int
	// Live traffic-adjusted duration when the backend provides one.
	TrafficDurationSeconds *int
	Start                  domain.Coordinate
	End                    domain.Coordinate
}

// DirectionsResult is a raw routing response for one origin->...->destination
// request with ordered waypoints.
type DirectionsResult struct {
	Legs []DirectionsLeg
	// Encoded overview geometry for the whole route.
	OverviewPolyline string
}

// Contract for an external turn-by-turn directions backend.
//
// Waypoints are visited in the given order; the provider must not reorder
// them. Implementations translate backend failures into
// domain.ErrRoutingUnavailable.
type DirectionsProvider interface {
	Route(ctx context.Context, origin, destination domain.Coordinate, waypoints []domain.Coordinate) (DirectionsResult, error)
}
