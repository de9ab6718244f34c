package handlers

import (
	"context"
	"net/http"

	"eco-delivery-service/internal/api/dto"
	"eco-delivery-service/internal/domain"
	"eco-delivery-service/internal/services"
)

// ClusterLister is the slice of the cluster service this handler needs.
type ClusterLister interface {
	ListClusters(ctx context.Context, filter services.ClusterFilter) ([]domain.Cluster, error)
}

// ClusterHandler exposes the read-only batch projection.
type ClusterHandler struct {
	Service ClusterLister
}

func (h *ClusterHandler) List(w http.ResponseWriter, r *http.Request) {
	var filter services.ClusterFilter

	if v := r.URL.Query().Get("warehouse_id"); v != "" {
		filter.WarehouseID = &v
	}
	if v := r.URL.Query().Get("time_slot"); v != "" {
		slot, err := domain.ParseTimeSlot(v)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "time_slot must be morning, afternoon or evening")
			return
		}
		filter.TimeSlot = &slot
	}

	clusters, err := h.Service.ListClusters(r.Context(), filter)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	res := dto.ListClustersResponse{Clusters: make([]dto.ClusterResponse, 0, len(clusters))}
	for _, c := range clusters {
		route := make([]dto.Coordinate, 0, len(c.Route))
		for _, p := range c.Route {
			route = append(route, dto.Coordinate{Lat: p.Lat, Lng: p.Lng})
		}
		res.Clusters = append(res.Clusters, dto.ClusterResponse{
			WarehouseID:        c.WarehouseID,
			TimeSlot:           string(c.TimeSlot),
			Date:               c.Date,
			OrderIDs:           c.OrderIDs,
			Route:              route,
			TotalDistanceKm:    c.TotalDistanceKm,
			TotalDurationSec:   c.TotalDurationSec,
			TotalCO2G:          c.TotalCO2G,
			SensitiveZoneCount: c.SensitiveZoneCount,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
