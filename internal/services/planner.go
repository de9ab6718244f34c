package services

import (
	"context"
	"fmt"

	"eco-delivery-service/internal/domain"
	"eco-delivery-service/internal/platform/obs"
	"eco-delivery-service/internal/ports"
)

// EcoRoutePlanner produces the two routes a batching decision compares: the
// naive counterfactual (every stop gets its own depot round trip) and the
// eco route (one shared loop over all stops).
type EcoRoutePlanner struct {
	metrics  *RouteMetricsService
	ordering StopOrdering
}

func NewEcoRoutePlanner(metrics *RouteMetricsService, ordering StopOrdering) *EcoRoutePlanner {
	if ordering == nil {
		ordering = NearestNeighborOrdering{}
	}
	return &EcoRoutePlanner{metrics: metrics, ordering: ordering}
}

// BatchPlan holds both plans for one candidate + peer set.
type BatchPlan struct {
	Naive domain.RoutePlan
	Eco   domain.RoutePlan
}

// PlanSolo computes the depot -> stop -> depot round trip for one delivery.
func (p *EcoRoutePlanner) PlanSolo(ctx context.Context, depot domain.Coordinate, stop Stop) (_ domain.RoutePlan, err error) {
	defer obs.Time(ctx, "planner.PlanSolo")(&err)

	res, err := p.metrics.GetRouteMetrics(ctx, depot, []domain.Coordinate{stop.Coord, depot})
	if err != nil {
		return domain.RoutePlan{}, fmt.Errorf("plan solo: %w", err)
	}

	return domain.RoutePlan{
		Metrics: res.Metrics,
		Legs:    p.buildLegs(ctx, res.Legs, []Stop{stop}),
	}, nil
}

// PlanBatch computes the naive and eco plans for the candidate plus its
// peers. Visiting order for the eco loop comes from the configured ordering
// strategy. RoutingUnavailable from the metrics provider propagates; the
// caller decides whether to fall back to solo delivery.
func (p *EcoRoutePlanner) PlanBatch(
	ctx context.Context,
	depot domain.Coordinate,
	candidate Stop,
	peers []Stop,
) (_ BatchPlan, err error) {
	defer obs.Time(ctx, "planner.PlanBatch")(&err)

	all := make([]Stop, 0, 1+len(peers))
	all = append(all, candidate)
	all = append(all, peers...)

	// Naive: each stop delivered independently; totals are the sum of every
	// round trip. This is the zero-batching counterfactual.
	var naive domain.RoutePlan
	for _, stop := range all {
		solo, err := p.PlanSolo(ctx, depot, stop)
		if err != nil {
			return BatchPlan{}, fmt.Errorf("plan batch: naive leg for %q: %w", stop.OrderID, err)
		}
		naive.Metrics.Add(solo.Metrics)
		naive.Legs = append(naive.Legs, solo.Legs...)
	}

	// Eco: one closed loop over all stops.
	ordered := p.ordering.OrderStops(depot, all)

	loop := make([]domain.Coordinate, 0, len(ordered)+1)
	for _, stop := range ordered {
		loop = append(loop, stop.Coord)
	}
	loop = append(loop, depot)

	res, err := p.metrics.GetRouteMetrics(ctx, depot, loop)
	if err != nil {
		return BatchPlan{}, fmt.Errorf("plan batch: eco loop: %w", err)
	}

	eco := domain.RoutePlan{
		Metrics: res.Metrics,
		Legs:    p.buildLegs(ctx, res.Legs, ordered),
	}

	return BatchPlan{Naive: naive, Eco: eco}, nil
}

// buildLegs attributes raw directions legs to the stops they serve. For n
// stops the loop has n+1 legs; leg i arrives at stop i, the final leg
// returns to the depot (nil order reference).
func (p *EcoRoutePlanner) buildLegs(ctx context.Context, raw []ports.DirectionsLeg, ordered []Stop) []domain.RouteLeg {
	legs := make([]domain.RouteLeg, 0, len(raw))

	for i, leg := range raw {
		var fromID, toID *string
		if i > 0 && i-1 < len(ordered) && ordered[i-1].OrderID != "" {
			id := ordered[i-1].OrderID
			fromID = &id
		}
		if i < len(ordered) && ordered[i].OrderID != "" {
			id := ordered[i].OrderID
			toID = &id
		}

		distanceKm := float64(leg.DistanceMeters) / 1000.0
		duration := leg.DurationSeconds
		if leg.TrafficDurationSeconds != nil {
			duration = *leg.TrafficDurationSeconds
		}

		co2g, err := p.metrics.CO2ForDistance(distanceKm)
		if err != nil {
			co2g = 0
		}

		legs = append(legs, domain.RouteLeg{
			FromOrderID: fromID,
			ToOrderID:   toID,
			From:        leg.Start,
			To:          leg.End,
			DistanceKm:  distanceKm,
			DurationSec: duration,
			Polyline:    []domain.Coordinate{leg.Start, leg.End},
			AQI:         p.metrics.AQINear(ctx, leg.End),
			ZoneCount:   p.metrics.ZonesNear(ctx, leg.End),
			CO2G:        co2g,
		})
	}

	return legs
}
