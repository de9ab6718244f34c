package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"eco-delivery-service/internal/domain"
	"eco-delivery-service/internal/logging"
	"eco-delivery-service/internal/platform/obs"
	"eco-delivery-service/internal/ports"
)

// SlotRecommender ranks today's delivery slots for a prospective address by
// the CO2 a shopper would save joining each slot's existing batch.
type SlotRecommender struct {
	orders     ports.OrderRepository
	warehouses ports.WarehouseRepository
	planner    *EcoRoutePlanner
	radiusM    float64
	now        func() time.Time
}

func NewSlotRecommender(
	orders ports.OrderRepository,
	warehouses ports.WarehouseRepository,
	planner *EcoRoutePlanner,
	radiusM float64,
) *SlotRecommender {
	if radiusM <= 0 {
		radiusM = 1000
	}
	return &SlotRecommender{
		orders:     orders,
		warehouses: warehouses,
		planner:    planner,
		radiusM:    radiusM,
		now:        time.Now,
	}
}

// SlotResult scores one slot. SavingsKg is rounded to two decimals for
// display; ranking uses the rounded value so ties in the response are real
// ties.
type SlotResult struct {
	TimeSlot  domain.TimeSlot
	PeerCount int
	SavingsKg float64
}

// SuggestSlots scores every slot for the given address and returns them in
// descending savings order. Slot order within equal savings follows the
// canonical slot sequence.
//
// Routing outages degrade every slot to zero savings rather than erroring:
// a recommendation is advisory and must never block the slot picker.
func (s *SlotRecommender) SuggestSlots(ctx context.Context, address domain.Address) (_ []SlotResult, err error) {
	defer obs.Time(ctx, "slots.SuggestSlots")(&err)

	if err := address.Validate(); err != nil {
		return nil, fmt.Errorf("suggest slots: address: %w", err)
	}

	warehouses, err := s.warehouses.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("suggest slots: list warehouses: %w", err)
	}
	depot, err := domain.NearestWarehouse(warehouses, address.Coordinate)
	if err != nil {
		return nil, fmt.Errorf("suggest slots: %w", err)
	}

	candidate := Stop{Coord: address.Coordinate}

	solo, err := s.planner.PlanSolo(ctx, depot.Location.Coordinate, candidate)
	if err != nil {
		if errors.Is(err, domain.ErrRoutingUnavailable) {
			logging.L().Warnw("slot suggestion degraded, routing unavailable", "error", err)
			return zeroResults(), nil
		}
		return nil, fmt.Errorf("suggest slots: solo baseline: %w", err)
	}

	now := s.now()
	dayStart := DayStart(now)

	results := make([]SlotResult, 0, len(domain.AllSlots()))
	for _, slot := range domain.AllSlots() {
		result, err := s.scoreSlot(ctx, depot, candidate, solo.Metrics.CO2G, slot, dayStart, now)
		if err != nil {
			if errors.Is(err, domain.ErrRoutingUnavailable) {
				logging.L().Warnw("slot score degraded, routing unavailable",
					"slot", slot, "error", err)
				result = SlotResult{TimeSlot: slot}
			} else {
				return nil, fmt.Errorf("suggest slots: slot %s: %w", slot, err)
			}
		}
		results = append(results, result)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].SavingsKg > results[j].SavingsKg
	})
	return results, nil
}

func (s *SlotRecommender) scoreSlot(
	ctx context.Context,
	depot domain.Warehouse,
	candidate Stop,
	soloCO2g float64,
	slot domain.TimeSlot,
	dayStart time.Time,
	now time.Time,
) (SlotResult, error) {
	slotCopy := slot
	existing, err := s.orders.ListOrders(ctx, ports.OrderFilter{
		TimeSlot:     &slotCopy,
		CreatedAfter: &dayStart,
	})
	if err != nil {
		return SlotResult{}, fmt.Errorf("list orders: %w", err)
	}

	peers := FindPeers(candidate.Coord, slot, now, existing, s.radiusM)
	if len(peers) == 0 {
		return SlotResult{TimeSlot: slot}, nil
	}

	peerStops := make([]Stop, 0, len(peers))
	for _, p := range peers {
		peerStops = append(peerStops, Stop{OrderID: p.ID, Coord: p.Address.Coordinate})
	}

	plan, err := s.planner.PlanBatch(ctx, depot.Location.Coordinate, candidate, peerStops)
	if err != nil {
		return SlotResult{}, err
	}

	perOrder, err := AllocatePerOrder(plan.Eco.Metrics.CO2G, 1+len(peers))
	if err != nil {
		return SlotResult{}, err
	}

	savedG := CO2Saved(soloCO2g, perOrder)
	return SlotResult{
		TimeSlot:  slot,
		PeerCount: len(peers),
		SavingsKg: roundKg(savedG / 1000.0),
	}, nil
}

func roundKg(kg float64) float64 {
	return math.Round(kg*100) / 100
}

func zeroResults() []SlotResult {
	slots := domain.AllSlots()
	results := make([]SlotResult, 0, len(slots))
	for _, slot := range slots {
		results = append(results, SlotResult{TimeSlot: slot})
	}
	return results
}
