package domain

import "math"

// Mean Earth radius used for great-circle distances.
const earthRadiusKm = 6371.0

// Immutable WGS84 geographic coordinate (latitude, longitude in degrees).
type Coordinate struct {
	Lat float64
	Lng float64
}

// Validate reports whether the coordinate lies inside the WGS84 domain.
func (c Coordinate) Validate() error {
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lng) {
		return ErrInvalidInput
	}
	if c.Lat < -90 || c.Lat > 90 {
		return ErrInvalidInput
	}
	if c.Lng < -180 || c.Lng > 180 {
		return ErrInvalidInput
	}
	return nil
}

// DistanceKm returns the Haversine great-circle distance to other in kilometers.
// Pure function; NaN inputs propagate to the result.
func (c Coordinate) DistanceKm(other Coordinate) float64 {
	dLat := degToRad(other.Lat - c.Lat)
	dLng := degToRad(other.Lng - c.Lng)

	sinLat := math.Sin(dLat / 2)
	sinLng := math.Sin(dLng / 2)

	h := sinLat*sinLat +
		math.Cos(degToRad(c.Lat))*math.Cos(degToRad(other.Lat))*sinLng*sinLng

	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}

// DistanceM returns the great-circle distance to other in meters.
func (c Coordinate) DistanceM(other Coordinate) float64 {
	return c.DistanceKm(other) * 1000.0
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// Address is a coordinate paired with a free-text label.
// Immutable once attached to an Order.
type Address struct {
	Label string
	Coordinate
}
