package ports

import (
	"context"
	"time"

	"eco-delivery-service/internal/domain"
)

// OrderFilter narrows order queries; nil fields are ignored.
type OrderFilter struct {
	TimeSlot     *domain.TimeSlot
	CreatedAfter *time.Time
	WarehouseID  *string
}

// Port: boundary for persisting and querying orders.
type OrderRepository interface {
	CreateOrder(ctx context.Context, order *domain.Order) error
	// UpdateEmissions records the batched allocation computed after creation.
	UpdateEmissions(ctx context.Context, orderID string, actualCO2g, co2SavedG float64) error
	ListOrders(ctx context.Context, filter OrderFilter) ([]domain.Order, error)
}

// Port: boundary for depot lookup and admin creation.
type WarehouseRepository interface {
	ListAll(ctx context.Context) ([]domain.Warehouse, error)
	Create(ctx context.Context, warehouse *domain.Warehouse) error
}

// Port: boundary for the GreenCoins balance.
type RewardsRepository interface {
	Balance(ctx context.Context) (int64, error)
	AddCoins(ctx context.Context, coins int64) (int64, error)
}
