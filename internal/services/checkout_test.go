package services

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"eco-delivery-service/internal/adapters/directions"
	"eco-delivery-service/internal/domain"
)

func newTestCheckout(orders *memOrderRepo, warehouses *memWarehouseRepo, provider *directions.MockDirectionsProvider) *CheckoutService {
	svc := NewCheckoutService(orders, warehouses, &memRewardsRepo{}, newTestPlanner(provider), CheckoutConfig{
		BatchRadiusM: 1000,
		CoinsPer100G: 1,
	}, nil)
	svc.now = fixedNow
	return svc
}

func TestCheckoutSoloOrder(t *testing.T) {
	orders := &memOrderRepo{}
	warehouses := &memWarehouseRepo{warehouses: []domain.Warehouse{testWarehouse()}}
	svc := newTestCheckout(orders, warehouses, &directions.MockDirectionsProvider{})

	res, err := svc.Checkout(context.Background(), CheckoutRequest{
		CustomerName: "Asha",
		Address:      addr("home", 12.9806, 77.5946),
		TimeSlot:     domain.SlotMorning,
		Items: []domain.OrderItem{
			{ProductID: "p-1", Quantity: 2, PriceAtTime: 250, CarbonKgAtTime: 0.5, Packaging: "cardboard"},
		},
		TotalAmount: 500,
	})
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}

	if res.BatchSize != 1 {
		t.Fatalf("BatchSize = %d, want 1", res.BatchSize)
	}
	if res.CO2SavedG != 0 || res.RewardCoins != 0 {
		t.Fatalf("solo order should save nothing, got saved=%v coins=%d", res.CO2SavedG, res.RewardCoins)
	}

	stored, ok := orders.get(res.OrderID)
	if !ok {
		t.Fatalf("order %q not persisted", res.OrderID)
	}
	if stored.EstimatedCO2gIfAlone <= 0 {
		t.Fatalf("solo baseline not recorded: %+v", stored)
	}
	if stored.ActualCO2gInCluster != stored.EstimatedCO2gIfAlone {
		t.Fatalf("solo order actual %v should equal baseline %v",
			stored.ActualCO2gInCluster, stored.EstimatedCO2gIfAlone)
	}
	// 0.5 kg product plus 1 kg cardboard packaging, per unit.
	if want := (0.5 + 1) * 2 * 1000; stored.ProductCO2G != want {
		t.Fatalf("ProductCO2G = %v, want %v", stored.ProductCO2G, want)
	}
}

func TestCheckoutBatchesWithNearbyPeer(t *testing.T) {
	orders := &memOrderRepo{}
	warehouses := &memWarehouseRepo{warehouses: []domain.Warehouse{testWarehouse()}}
	provider := &directions.MockDirectionsProvider{}
	svc := newTestCheckout(orders, warehouses, provider)

	ctx := context.Background()
	first, err := svc.Checkout(ctx, CheckoutRequest{
		CustomerName: "Asha",
		Address:      addr("home", 12.9806, 77.5946),
		TimeSlot:     domain.SlotMorning,
	})
	if err != nil {
		t.Fatalf("first checkout: %v", err)
	}

	second, err := svc.Checkout(ctx, CheckoutRequest{
		CustomerName: "Ravi",
		Address:      addr("flat next door", 12.9808, 77.5947),
		TimeSlot:     domain.SlotMorning,
	})
	if err != nil {
		t.Fatalf("second checkout: %v", err)
	}

	if second.BatchSize != 2 {
		t.Fatalf("second order BatchSize = %d, want 2", second.BatchSize)
	}
	if second.CO2SavedG <= 0 {
		t.Fatalf("second order should save CO2, got %v", second.CO2SavedG)
	}
	if want := int64(math.Floor(second.CO2SavedG / 100)); second.RewardCoins != want {
		t.Fatalf("RewardCoins = %d, want %d for %v g saved", second.RewardCoins, want, second.CO2SavedG)
	}

	stored, _ := orders.get(second.OrderID)
	if stored.CO2SavedG != second.CO2SavedG {
		t.Fatalf("persisted saved %v != returned %v", stored.CO2SavedG, second.CO2SavedG)
	}

	// Batching is forward-only: the first order keeps its solo figures.
	firstStored, _ := orders.get(first.OrderID)
	if firstStored.CO2SavedG != 0 {
		t.Fatalf("earlier order retroactively updated: %+v", firstStored)
	}
}

func TestCheckoutCreditsRewardBalance(t *testing.T) {
	orders := &memOrderRepo{}
	warehouses := &memWarehouseRepo{warehouses: []domain.Warehouse{testWarehouse()}}
	rewards := &memRewardsRepo{}
	svc := NewCheckoutService(orders, warehouses, rewards, newTestPlanner(&directions.MockDirectionsProvider{}), CheckoutConfig{
		BatchRadiusM: 1000,
		CoinsPer100G: 1,
	}, nil)
	svc.now = fixedNow

	ctx := context.Background()
	if _, err := svc.Checkout(ctx, CheckoutRequest{
		CustomerName: "Asha",
		Address:      addr("home", 12.9806, 77.5946),
		TimeSlot:     domain.SlotMorning,
	}); err != nil {
		t.Fatalf("first checkout: %v", err)
	}

	res, err := svc.Checkout(ctx, CheckoutRequest{
		CustomerName: "Ravi",
		Address:      addr("next door", 12.9808, 77.5947),
		TimeSlot:     domain.SlotMorning,
	})
	if err != nil {
		t.Fatalf("second checkout: %v", err)
	}
	if res.RewardCoins < 1 {
		t.Fatalf("batched order earned %d coins, want at least 1", res.RewardCoins)
	}

	balance, _ := rewards.Balance(ctx)
	if balance != res.RewardCoins {
		t.Fatalf("rewards balance = %d, want %d", balance, res.RewardCoins)
	}
}

func TestCheckoutDistantPeerNotBatched(t *testing.T) {
	orders := &memOrderRepo{}
	warehouses := &memWarehouseRepo{warehouses: []domain.Warehouse{testWarehouse()}}
	svc := newTestCheckout(orders, warehouses, &directions.MockDirectionsProvider{})

	ctx := context.Background()
	if _, err := svc.Checkout(ctx, CheckoutRequest{
		CustomerName: "Asha",
		Address:      addr("north side", 13.05, 77.5946),
		TimeSlot:     domain.SlotMorning,
	}); err != nil {
		t.Fatalf("first checkout: %v", err)
	}

	res, err := svc.Checkout(ctx, CheckoutRequest{
		CustomerName: "Ravi",
		Address:      addr("south side", 12.93, 77.5946),
		TimeSlot:     domain.SlotMorning,
	})
	if err != nil {
		t.Fatalf("second checkout: %v", err)
	}
	if res.BatchSize != 1 || res.CO2SavedG != 0 {
		t.Fatalf("distant orders must not batch: %+v", res)
	}
}

func TestCheckoutRoutingDownStillCreatesOrder(t *testing.T) {
	orders := &memOrderRepo{}
	warehouses := &memWarehouseRepo{warehouses: []domain.Warehouse{testWarehouse()}}
	provider := &directions.MockDirectionsProvider{Err: domain.ErrRoutingUnavailable}
	svc := newTestCheckout(orders, warehouses, provider)

	res, err := svc.Checkout(context.Background(), CheckoutRequest{
		CustomerName: "Asha",
		Address:      addr("home", 12.9806, 77.5946),
		TimeSlot:     domain.SlotEvening,
	})
	if err != nil {
		t.Fatalf("Checkout should degrade, not fail: %v", err)
	}

	if res.BatchSize != 1 || res.CO2SavedG != 0 || res.RewardCoins != 0 {
		t.Fatalf("degraded checkout should carry zero figures: %+v", res)
	}
	if provider.Calls != 2 {
		t.Fatalf("routing attempted %d times, want 2 (one retry)", provider.Calls)
	}

	stored, ok := orders.get(res.OrderID)
	if !ok {
		t.Fatalf("order not persisted despite routing outage")
	}
	if stored.EstimatedCO2gIfAlone != 0 {
		t.Fatalf("baseline should be zero when routing is down: %+v", stored)
	}
}

func TestCheckoutValidation(t *testing.T) {
	warehouses := &memWarehouseRepo{warehouses: []domain.Warehouse{testWarehouse()}}
	svc := newTestCheckout(&memOrderRepo{}, warehouses, &directions.MockDirectionsProvider{})

	tests := []struct {
		name string
		req  CheckoutRequest
		want error
	}{
		{
			name: "blank customer name",
			req:  CheckoutRequest{CustomerName: "  ", Address: addr("home", 12.98, 77.59), TimeSlot: domain.SlotMorning},
			want: domain.ErrInvalidInput,
		},
		{
			name: "latitude out of range",
			req:  CheckoutRequest{CustomerName: "Asha", Address: addr("home", 91, 77.59), TimeSlot: domain.SlotMorning},
			want: domain.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Checkout(context.Background(), tt.req)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestCheckoutNoWarehouse(t *testing.T) {
	svc := newTestCheckout(&memOrderRepo{}, &memWarehouseRepo{}, &directions.MockDirectionsProvider{})

	_, err := svc.Checkout(context.Background(), CheckoutRequest{
		CustomerName: "Asha",
		Address:      addr("home", 12.98, 77.59),
		TimeSlot:     domain.SlotMorning,
	})
	if !errors.Is(err, domain.ErrNoWarehouse) {
		t.Fatalf("err = %v, want ErrNoWarehouse", err)
	}
}

func TestSlotKeyIncludesDay(t *testing.T) {
	day1 := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)

	if slotKey("wh-1", domain.SlotMorning, day1) == slotKey("wh-1", domain.SlotMorning, day2) {
		t.Fatal("slot keys for different days must differ")
	}
	if slotKey("wh-1", domain.SlotMorning, day1) != slotKey("wh-1", domain.SlotMorning, day1.Add(2*time.Hour)) {
		t.Fatal("slot keys within one day must match")
	}
}
