package domain

// Warehouse is the depot a batch of deliveries departs from and returns to.
// Created via admin action; read-only during routing.
type Warehouse struct {
	ID       string
	Name     string
	Location Address
}

// NearestWarehouse returns the warehouse closest to point by great-circle
// distance, or ErrNoWarehouse when the slice is empty.
func NearestWarehouse(warehouses []Warehouse, point Coordinate) (Warehouse, error) {
	if len(warehouses) == 0 {
		return Warehouse{}, ErrNoWarehouse
	}

	best := warehouses[0]
	bestDist := best.Location.DistanceKm(point)
	for _, w := range warehouses[1:] {
		if d := w.Location.DistanceKm(point); d < bestDist {
			best = w
			bestDist = d
		}
	}
	return best, nil
}
