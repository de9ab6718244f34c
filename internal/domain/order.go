package domain

import "time"

// One purchased line item captured at checkout time.
type OrderItem struct {
	ProductID   string
	Quantity    int
	PriceAtTime float64
	// Product carbon footprint in kg per unit, captured at checkout so the
	// baseline survives later catalog edits.
	CarbonKgAtTime float64
	// Packaging material, e.g. "cardboard". Empty when unknown.
	Packaging string
}

// Order is a placed checkout with its delivery window and emission figures.
//
// EstimatedCO2gIfAlone, ActualCO2gInCluster and CO2SavedG are computed once,
// at creation, from the peers that already exist in the same slot. Later
// orders joining the slot never retroactively improve these figures; this is
// recorded behavior, not an oversight.
type Order struct {
	ID           string
	CustomerName string
	Address      Address
	Items        []OrderItem
	TotalAmount  float64
	TimeSlot     TimeSlot
	CreatedAt    time.Time
	WarehouseID  string

	// Product-level baseline from item footprints, in grams.
	ProductCO2G float64

	EstimatedCO2gIfAlone float64
	ActualCO2gInCluster  float64
	CO2SavedG            float64
}
