package services

import (
	"time"

	"eco-delivery-service/internal/domain"
)

// DayStart returns midnight of t's calendar day in t's location.
func DayStart(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// FindPeers selects the orders that can share a route with a candidate
// delivery: same time slot, created on the same calendar day as day, and
// within radiusM meters of the candidate address. All qualifying peers are
// included; batch size is deliberately uncapped (the radius bounds it in
// practice). An empty result is the normal solo-delivery outcome, not an
// error.
func FindPeers(
	candidate domain.Coordinate,
	slot domain.TimeSlot,
	day time.Time,
	existing []domain.Order,
	radiusM float64,
) []domain.Order {
	start := DayStart(day)
	end := start.AddDate(0, 0, 1)

	peers := make([]domain.Order, 0, len(existing))
	for _, o := range existing {
		if o.TimeSlot != slot {
			continue
		}
		if o.CreatedAt.Before(start) || !o.CreatedAt.Before(end) {
			continue
		}
		if err := o.Address.Validate(); err != nil {
			continue
		}
		if candidate.DistanceM(o.Address.Coordinate) > radiusM {
			continue
		}
		peers = append(peers, o)
	}
	return peers
}
