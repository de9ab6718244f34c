package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"eco-delivery-service/internal/domain"
	"eco-delivery-service/internal/emissions"
	"eco-delivery-service/internal/logging"
	"eco-delivery-service/internal/metrics"
	"eco-delivery-service/internal/platform/obs"
	"eco-delivery-service/internal/ports"
)

// CheckoutConfig carries the batching tunables the orchestrator needs.
type CheckoutConfig struct {
	BatchRadiusM float64
	CoinsPer100G float64
}

// CheckoutService orchestrates order placement: depot selection, solo
// baseline, peer clustering, eco planning, allocation and persistence.
//
// Failure policy: routing trouble degrades to solo-delivery semantics
// (co2_saved = 0) instead of blocking the purchase. Only a missing depot or
// invalid input rejects a checkout.
type CheckoutService struct {
	orders     ports.OrderRepository
	warehouses ports.WarehouseRepository
	rewards    ports.RewardsRepository
	planner    *EcoRoutePlanner
	cfg        CheckoutConfig
	metrics    *metrics.Registry
	locks      *slotLocks
	now        func() time.Time
}

func NewCheckoutService(
	orders ports.OrderRepository,
	warehouses ports.WarehouseRepository,
	rewards ports.RewardsRepository,
	planner *EcoRoutePlanner,
	cfg CheckoutConfig,
	reg *metrics.Registry,
) *CheckoutService {
	if cfg.BatchRadiusM <= 0 {
		cfg.BatchRadiusM = 1000
	}
	if cfg.CoinsPer100G <= 0 {
		cfg.CoinsPer100G = 1
	}
	return &CheckoutService{
		orders:     orders,
		warehouses: warehouses,
		rewards:    rewards,
		planner:    planner,
		cfg:        cfg,
		metrics:    reg,
		locks:      newSlotLocks(),
		now:        time.Now,
	}
}

type CheckoutRequest struct {
	CustomerName string
	Address      domain.Address
	TimeSlot     domain.TimeSlot
	Items        []domain.OrderItem
	TotalAmount  float64
}

type CheckoutResult struct {
	OrderID     string
	CO2SavedG   float64
	RewardCoins int64
	// BatchSize counts this order plus its peers; 1 means solo delivery.
	BatchSize int
}

// Checkout places an order and computes its batched emission figures.
func (s *CheckoutService) Checkout(ctx context.Context, req CheckoutRequest) (_ CheckoutResult, err error) {
	defer obs.Time(ctx, "checkout.Checkout")(&err)

	if strings.TrimSpace(req.CustomerName) == "" {
		return CheckoutResult{}, fmt.Errorf("checkout: customer name is required: %w", domain.ErrInvalidInput)
	}
	if err := req.Address.Validate(); err != nil {
		return CheckoutResult{}, fmt.Errorf("checkout: address: %w", err)
	}

	warehouses, err := s.warehouses.ListAll(ctx)
	if err != nil {
		return CheckoutResult{}, fmt.Errorf("checkout: list warehouses: %w", err)
	}
	depot, err := domain.NearestWarehouse(warehouses, req.Address.Coordinate)
	if err != nil {
		return CheckoutResult{}, fmt.Errorf("checkout: %w", err)
	}

	now := s.now()

	// Serialize peer-read through persist for this delivery window so
	// concurrent checkouts cannot both price themselves as if alone.
	lock := s.locks.acquire(slotKey(depot.ID, req.TimeSlot, now))
	defer lock.Unlock()

	// Product-level baseline from item and packaging footprints (kg -> g).
	// Unknown packaging contributes nothing rather than failing the purchase.
	productCO2 := 0.0
	for _, item := range req.Items {
		perUnitKg := item.CarbonKgAtTime
		if item.Packaging != "" {
			if kg, err := emissions.PackagingCO2Kg(item.Packaging); err == nil {
				perUnitKg += kg
			}
		}
		productCO2 += perUnitKg * float64(item.Quantity) * 1000
	}

	candidate := Stop{Coord: req.Address.Coordinate}

	solo, soloErr := s.planSoloWithRetry(ctx, depot.Location.Coordinate, candidate)

	order := &domain.Order{
		CustomerName: req.CustomerName,
		Address:      req.Address,
		Items:        req.Items,
		TotalAmount:  req.TotalAmount,
		TimeSlot:     req.TimeSlot,
		CreatedAt:    now,
		WarehouseID:  depot.ID,
		ProductCO2G:  productCO2,
	}
	if soloErr == nil {
		order.EstimatedCO2gIfAlone = solo.Metrics.CO2G
	}

	if err := s.orders.CreateOrder(ctx, order); err != nil {
		return CheckoutResult{}, fmt.Errorf("checkout: create order: %w", err)
	}
	if s.metrics != nil {
		s.metrics.OrdersCreatedTotal.Inc()
	}

	if soloErr != nil {
		// Routing down: the order ships, just without a savings figure.
		logging.L().Warnw("checkout degraded to solo semantics",
			"order_id", order.ID, "error", soloErr)
		if s.metrics != nil {
			s.metrics.RoutingFallbacksTotal.Inc()
		}
		return CheckoutResult{OrderID: order.ID, BatchSize: 1}, nil
	}

	result, allocErr := s.batchAndAllocate(ctx, depot, order, candidate, now)
	if allocErr != nil {
		// The purchase outranks the gamification layer: zero out rewards
		// rather than failing an already-created order.
		logging.L().Warnw("batch allocation failed, keeping solo figures",
			"order_id", order.ID, "error", allocErr)
		if s.metrics != nil {
			s.metrics.RoutingFallbacksTotal.Inc()
		}
		return CheckoutResult{OrderID: order.ID, BatchSize: 1}, nil
	}

	return result, nil
}

func (s *CheckoutService) batchAndAllocate(
	ctx context.Context,
	depot domain.Warehouse,
	order *domain.Order,
	candidate Stop,
	now time.Time,
) (CheckoutResult, error) {
	dayStart := DayStart(now)
	slot := order.TimeSlot
	existing, err := s.orders.ListOrders(ctx, ports.OrderFilter{
		TimeSlot:     &slot,
		CreatedAfter: &dayStart,
	})
	if err != nil {
		return CheckoutResult{}, fmt.Errorf("list peer orders: %w", err)
	}

	// The freshly created order comes back from the query; drop it.
	others := existing[:0:0]
	for _, o := range existing {
		if o.ID != order.ID {
			others = append(others, o)
		}
	}

	peers := FindPeers(order.Address.Coordinate, order.TimeSlot, now, others, s.cfg.BatchRadiusM)

	candidate.OrderID = order.ID
	peerStops := make([]Stop, 0, len(peers))
	for _, p := range peers {
		peerStops = append(peerStops, Stop{OrderID: p.ID, Coord: p.Address.Coordinate})
	}

	plan, err := s.planner.PlanBatch(ctx, depot.Location.Coordinate, candidate, peerStops)
	if err != nil {
		return CheckoutResult{}, fmt.Errorf("plan batch: %w", err)
	}

	batchSize := 1 + len(peers)
	perOrder, err := AllocatePerOrder(plan.Eco.Metrics.CO2G, batchSize)
	if err != nil {
		return CheckoutResult{}, fmt.Errorf("allocate: %w", err)
	}

	saved := CO2Saved(order.EstimatedCO2gIfAlone, perOrder)
	coins := RewardCoins(saved, s.cfg.CoinsPer100G)

	if err := s.orders.UpdateEmissions(ctx, order.ID, perOrder, saved); err != nil {
		return CheckoutResult{}, fmt.Errorf("update emissions: %w", err)
	}

	if coins > 0 && s.rewards != nil {
		if _, err := s.rewards.AddCoins(ctx, coins); err != nil {
			// The balance is a convenience counter; losing one grant is logged,
			// not fatal.
			logging.L().Warnw("coin grant failed", "order_id", order.ID, "coins", coins, "error", err)
		}
	}

	if s.metrics != nil {
		if batchSize > 1 {
			s.metrics.OrdersBatchedTotal.Inc()
		}
		if saved > 0 {
			s.metrics.CO2SavedGramsTotal.Add(saved)
		}
		if coins > 0 {
			s.metrics.CoinsGrantedTotal.Add(float64(coins))
		}
	}

	return CheckoutResult{
		OrderID:     order.ID,
		CO2SavedG:   saved,
		RewardCoins: coins,
		BatchSize:   batchSize,
	}, nil
}

// planSoloWithRetry retries RoutingUnavailable once before giving up.
func (s *CheckoutService) planSoloWithRetry(ctx context.Context, depot domain.Coordinate, stop Stop) (domain.RoutePlan, error) {
	plan, err := s.planner.PlanSolo(ctx, depot, stop)
	if err == nil || !errors.Is(err, domain.ErrRoutingUnavailable) {
		return plan, err
	}
	return s.planner.PlanSolo(ctx, depot, stop)
}
