package handlers

import (
	"net/http"
	"time"

	"eco-delivery-service/internal/api/dto"
	"eco-delivery-service/internal/domain"
	"eco-delivery-service/internal/ports"
)

// OrderHandler exposes read-only order retrieval endpoints.
type OrderHandler struct {
	Repo ports.OrderRepository
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	var filter ports.OrderFilter

	if v := r.URL.Query().Get("time_slot"); v != "" {
		slot, err := domain.ParseTimeSlot(v)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "time_slot must be morning, afternoon or evening")
			return
		}
		filter.TimeSlot = &slot
	}
	if v := r.URL.Query().Get("warehouse_id"); v != "" {
		filter.WarehouseID = &v
	}
	if v := r.URL.Query().Get("created_after"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "created_after must be RFC 3339")
			return
		}
		filter.CreatedAfter = &t
	}

	orders, err := h.Repo.ListOrders(r.Context(), filter)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	res := dto.ListOrdersResponse{Orders: make([]dto.OrderResponse, 0, len(orders))}
	for _, o := range orders {
		items := make([]dto.OrderItemResponse, 0, len(o.Items))
		for _, item := range o.Items {
			items = append(items, dto.OrderItemResponse{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Price:     item.PriceAtTime,
				CarbonKg:  item.CarbonKgAtTime,
				Packaging: item.Packaging,
			})
		}
		res.Orders = append(res.Orders, dto.OrderResponse{
			OrderID:      o.ID,
			CustomerName: o.CustomerName,
			Address: dto.Address{
				Label: o.Address.Label,
				Lat:   o.Address.Lat,
				Lng:   o.Address.Lng,
			},
			Items:                items,
			TotalAmount:          o.TotalAmount,
			TimeSlot:             string(o.TimeSlot),
			CreatedAt:            o.CreatedAt,
			WarehouseID:          o.WarehouseID,
			ProductCO2G:          o.ProductCO2G,
			EstimatedCO2gIfAlone: o.EstimatedCO2gIfAlone,
			ActualCO2gInCluster:  o.ActualCO2gInCluster,
			CO2SavedG:            o.CO2SavedG,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
