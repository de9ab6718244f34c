package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"eco-delivery-service/internal/domain"
	"eco-delivery-service/internal/platform/obs"
	"eco-delivery-service/internal/ports"
)

// avgSpeedKmph backs the cluster view's duration estimate. The view is a
// projection rebuilt from stored orders without re-querying the directions
// backend, so travel time is approximated from great-circle distance.
const avgSpeedKmph = 30.0

// ClusterService materializes the current delivery batches as a read-only
// projection. Clusters are derived from persisted orders on every call and
// never stored; emission figures are the sums frozen at checkout time.
type ClusterService struct {
	orders     ports.OrderRepository
	warehouses ports.WarehouseRepository
	ordering   StopOrdering
	radiusM    float64
	now        func() time.Time
}

func NewClusterService(
	orders ports.OrderRepository,
	warehouses ports.WarehouseRepository,
	ordering StopOrdering,
	radiusM float64,
) *ClusterService {
	if ordering == nil {
		ordering = NearestNeighborOrdering{}
	}
	if radiusM <= 0 {
		radiusM = 1000
	}
	return &ClusterService{
		orders:     orders,
		warehouses: warehouses,
		ordering:   ordering,
		radiusM:    radiusM,
		now:        time.Now,
	}
}

// ClusterFilter narrows the projection. Nil fields match everything.
type ClusterFilter struct {
	WarehouseID *string
	TimeSlot    *domain.TimeSlot
}

// ListClusters groups today's orders into batches: two orders share a batch
// when a chain of pairwise-within-radius orders connects them in the same
// warehouse, slot and day. Route order within a batch follows the configured
// stop ordering from the depot.
func (s *ClusterService) ListClusters(ctx context.Context, filter ClusterFilter) (_ []domain.Cluster, err error) {
	defer obs.Time(ctx, "clusters.ListClusters")(&err)

	dayStart := DayStart(s.now())
	orders, err := s.orders.ListOrders(ctx, ports.OrderFilter{
		TimeSlot:     filter.TimeSlot,
		CreatedAfter: &dayStart,
		WarehouseID:  filter.WarehouseID,
	})
	if err != nil {
		return nil, fmt.Errorf("list clusters: list orders: %w", err)
	}

	warehouses, err := s.warehouses.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list clusters: list warehouses: %w", err)
	}
	depots := make(map[string]domain.Warehouse, len(warehouses))
	for _, w := range warehouses {
		depots[w.ID] = w
	}

	// Partition by warehouse and slot first; radius grouping only applies
	// within one delivery window.
	type windowKey struct {
		warehouseID string
		slot        domain.TimeSlot
	}
	windows := make(map[windowKey][]domain.Order)
	for _, o := range orders {
		if err := o.Address.Validate(); err != nil {
			continue
		}
		key := windowKey{warehouseID: o.WarehouseID, slot: o.TimeSlot}
		windows[key] = append(windows[key], o)
	}

	date := dayStart.Format("2006-01-02")
	var clusters []domain.Cluster
	for key, group := range windows {
		depot, ok := depots[key.warehouseID]
		if !ok {
			continue
		}
		for _, members := range connectedGroups(group, s.radiusM) {
			clusters = append(clusters, s.buildCluster(depot, key.slot, date, members))
		}
	}

	sort.Slice(clusters, func(i, j int) bool {
		if clusters[i].WarehouseID != clusters[j].WarehouseID {
			return clusters[i].WarehouseID < clusters[j].WarehouseID
		}
		if clusters[i].TimeSlot != clusters[j].TimeSlot {
			return clusters[i].TimeSlot < clusters[j].TimeSlot
		}
		return clusters[i].OrderIDs[0] < clusters[j].OrderIDs[0]
	})
	return clusters, nil
}

// connectedGroups splits orders into radius-connected components via
// breadth-first expansion. Determinism comes from seeding components in
// slice order.
func connectedGroups(orders []domain.Order, radiusM float64) [][]domain.Order {
	visited := make([]bool, len(orders))
	var groups [][]domain.Order

	for i := range orders {
		if visited[i] {
			continue
		}
		visited[i] = true
		queue := []int{i}
		var members []domain.Order

		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			members = append(members, orders[cur])

			for j := range orders {
				if visited[j] {
					continue
				}
				d := orders[cur].Address.Coordinate.DistanceM(orders[j].Address.Coordinate)
				if d <= radiusM {
					visited[j] = true
					queue = append(queue, j)
				}
			}
		}
		groups = append(groups, members)
	}
	return groups
}

func (s *ClusterService) buildCluster(depot domain.Warehouse, slot domain.TimeSlot, date string, members []domain.Order) domain.Cluster {
	stops := make([]Stop, 0, len(members))
	totalCO2 := 0.0
	for _, o := range members {
		stops = append(stops, Stop{OrderID: o.ID, Coord: o.Address.Coordinate})
		totalCO2 += o.ActualCO2gInCluster
	}

	ordered := s.ordering.OrderStops(depot.Location.Coordinate, stops)

	route := make([]domain.Coordinate, 0, len(ordered)+2)
	route = append(route, depot.Location.Coordinate)
	orderIDs := make([]string, 0, len(ordered))
	for _, stop := range ordered {
		route = append(route, stop.Coord)
		orderIDs = append(orderIDs, stop.OrderID)
	}
	route = append(route, depot.Location.Coordinate)

	distanceKm := 0.0
	for i := 1; i < len(route); i++ {
		distanceKm += route[i-1].DistanceKm(route[i])
	}

	return domain.Cluster{
		WarehouseID:      depot.ID,
		TimeSlot:         slot,
		Date:             date,
		OrderIDs:         orderIDs,
		Route:            route,
		TotalDistanceKm:  distanceKm,
		TotalDurationSec: int(distanceKm / avgSpeedKmph * 3600),
		TotalCO2G:        totalCO2,
	}
}
