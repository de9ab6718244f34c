package services

import (
	"eco-delivery-service/internal/domain"
)

// Stop is a delivery destination tied to the order it serves. An empty
// OrderID marks a prospective stop with no order yet (slot suggestion).
type Stop struct {
	OrderID string
	Coord   domain.Coordinate
}

// StopOrdering decides the visiting sequence for a batched loop. The planner
// never solves TSP; orderings are cheap heuristics behind this interface so
// deployments can swap strategies.
type StopOrdering interface {
	OrderStops(depot domain.Coordinate, stops []Stop) []Stop
}

// NearestNeighborOrdering greedily picks the closest remaining stop by
// great-circle distance at each step.
//
// The algorithm minimizes immediate travel distance, not global optimality.
// The design prioritizes determinism and simplicity over optimality.
type NearestNeighborOrdering struct{}

func (NearestNeighborOrdering) OrderStops(depot domain.Coordinate, stops []Stop) []Stop {
	if len(stops) <= 1 {
		return append([]Stop(nil), stops...)
	}

	remaining := append([]Stop(nil), stops...)
	ordered := make([]Stop, 0, len(stops))
	current := depot

	for len(remaining) > 0 {
		bestIdx := 0
		bestDist := current.DistanceKm(remaining[0].Coord)

		for i := 1; i < len(remaining); i++ {
			d := current.DistanceKm(remaining[i].Coord)
			// Tie-breaker ensures deterministic ordering when distances are equal.
			if d < bestDist || (d == bestDist && remaining[i].OrderID < remaining[bestIdx].OrderID) {
				bestIdx = i
				bestDist = d
			}
		}

		next := remaining[bestIdx]
		ordered = append(ordered, next)
		current = next.Coord
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
	}

	return ordered
}

// DiscoveryOrdering keeps the caller-supplied order (candidate first, then
// peers as discovered). Useful when the caller has already sequenced stops.
type DiscoveryOrdering struct{}

func (DiscoveryOrdering) OrderStops(_ domain.Coordinate, stops []Stop) []Stop {
	return append([]Stop(nil), stops...)
}
