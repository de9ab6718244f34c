package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"eco-delivery-service/internal/domain"
	"eco-delivery-service/internal/emissions"
	"eco-delivery-service/internal/ports"
)

// memOrderRepo is an in-memory OrderRepository for service tests.
type memOrderRepo struct {
	mu     sync.Mutex
	orders []domain.Order
	nextID int

	createErr error
	updateErr error
	listErr   error
}

func (r *memOrderRepo) CreateOrder(_ context.Context, order *domain.Order) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if order.ID == "" {
		r.nextID++
		order.ID = fmt.Sprintf("order-%d", r.nextID)
	}
	r.orders = append(r.orders, *order)
	return nil
}

func (r *memOrderRepo) UpdateEmissions(_ context.Context, orderID string, actualCO2g, co2SavedG float64) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.orders {
		if r.orders[i].ID == orderID {
			r.orders[i].ActualCO2gInCluster = actualCO2g
			r.orders[i].CO2SavedG = co2SavedG
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *memOrderRepo) ListOrders(_ context.Context, filter ports.OrderFilter) ([]domain.Order, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Order
	for _, o := range r.orders {
		if filter.TimeSlot != nil && o.TimeSlot != *filter.TimeSlot {
			continue
		}
		if filter.CreatedAfter != nil && o.CreatedAt.Before(*filter.CreatedAfter) {
			continue
		}
		if filter.WarehouseID != nil && o.WarehouseID != *filter.WarehouseID {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

func (r *memOrderRepo) get(orderID string) (domain.Order, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.ID == orderID {
			return o, true
		}
	}
	return domain.Order{}, false
}

// memRewardsRepo is an in-memory RewardsRepository for service tests.
type memRewardsRepo struct {
	mu    sync.Mutex
	coins int64
}

func (r *memRewardsRepo) Balance(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.coins, nil
}

func (r *memRewardsRepo) AddCoins(_ context.Context, coins int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.coins += coins
	return r.coins, nil
}

// memWarehouseRepo is an in-memory WarehouseRepository for service tests.
type memWarehouseRepo struct {
	warehouses []domain.Warehouse
	listErr    error
}

func (r *memWarehouseRepo) ListAll(_ context.Context) ([]domain.Warehouse, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	return append([]domain.Warehouse(nil), r.warehouses...), nil
}

func (r *memWarehouseRepo) Create(_ context.Context, warehouse *domain.Warehouse) error {
	r.warehouses = append(r.warehouses, *warehouse)
	return nil
}

// newTestPlanner wires a planner over the given directions backend with no
// places overlay and the default petrol emission model.
func newTestPlanner(directions ports.DirectionsProvider) *EcoRoutePlanner {
	metrics := NewRouteMetricsService(directions, nil, emissions.NewModel(nil, 0), nil, RouteMetricsConfig{
		Vehicle: domain.VehiclePetrol,
	})
	return NewEcoRoutePlanner(metrics, nil)
}

func coord(lat, lng float64) domain.Coordinate {
	return domain.Coordinate{Lat: lat, Lng: lng}
}

func addr(label string, lat, lng float64) domain.Address {
	return domain.Address{Label: label, Coordinate: coord(lat, lng)}
}

func testWarehouse() domain.Warehouse {
	return domain.Warehouse{
		ID:       "wh-1",
		Name:     "Central",
		Location: addr("Central depot", 12.9716, 77.5946),
	}
}

func fixedNow() time.Time {
	return time.Date(2026, time.March, 10, 9, 30, 0, 0, time.UTC)
}
