package ports

import (
	"context"

	"eco-delivery-service/internal/domain"
)

// Contract for an external places/POI backend.
type PlacesProvider interface {
	// NearbyCount returns how many places of the given category lie within
	// radiusM meters of point.
	NearbyCount(ctx context.Context, point domain.Coordinate, radiusM int, category string) (int, error)
}

// Optional extension for backends that also expose an air quality index.
// Route legs report AQI 0 when the provider does not implement it.
type AirQualityProvider interface {
	AQI(ctx context.Context, point domain.Coordinate) (int, error)
}
