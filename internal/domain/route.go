package domain

// RouteMetrics aggregates a directions response or a set of legs.
// All figures are non-negative for valid input.
type RouteMetrics struct {
	DistanceKm         float64
	DurationSec        int
	CO2G               float64
	SensitiveZoneCount int
	Polyline           []Coordinate
}

// Add folds other into m. Polylines are concatenated in call order.
func (m *RouteMetrics) Add(other RouteMetrics) {
	m.DistanceKm += other.DistanceKm
	m.DurationSec += other.DurationSec
	m.CO2G += other.CO2G
	m.SensitiveZoneCount += other.SensitiveZoneCount
	m.Polyline = append(m.Polyline, other.Polyline...)
}

// RouteLeg is one directed segment between two consecutive stops.
// A nil order ID marks the depot end of a leg.
type RouteLeg struct {
	FromOrderID *string
	ToOrderID   *string
	From        Coordinate
	To          Coordinate
	DistanceKm  float64
	DurationSec int
	Polyline    []Coordinate
	AQI         int
	ZoneCount   int
	CO2G        float64
}

// RoutePlan is the planner output for one closed depot loop: aggregate
// metrics plus the ordered leg breakdown for UI explainability.
// Immutable planning data, no side effects.
type RoutePlan struct {
	Metrics RouteMetrics
	Legs    []RouteLeg
}

// Cluster is a derived, regenerable projection of one delivery batch.
// It is cached presentation state, never a source of truth.
type Cluster struct {
	WarehouseID        string
	TimeSlot           TimeSlot
	Date               string
	OrderIDs           []string
	Route              []Coordinate
	TotalDistanceKm    float64
	TotalDurationSec   int
	TotalCO2G          float64
	SensitiveZoneCount int
}
