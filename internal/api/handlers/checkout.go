package handlers

import (
	"context"
	"net/http"
	"strings"

	"eco-delivery-service/internal/api/dto"
	"eco-delivery-service/internal/domain"
	"eco-delivery-service/internal/services"
)

// CheckoutPlacer is the slice of the checkout service this handler needs.
type CheckoutPlacer interface {
	Checkout(ctx context.Context, req services.CheckoutRequest) (services.CheckoutResult, error)
}

// CheckoutHandler turns POST /checkout bodies into checkout service calls.
type CheckoutHandler struct {
	Service CheckoutPlacer
}

func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req dto.CheckoutRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}

	if strings.TrimSpace(req.CustomerName) == "" {
		writeError(w, r, http.StatusBadRequest, "customer_name is required")
		return
	}
	slot, err := domain.ParseTimeSlot(req.TimeSlot)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "time_slot must be morning, afternoon or evening")
		return
	}
	if len(req.Items) == 0 {
		writeError(w, r, http.StatusBadRequest, "items must not be empty")
		return
	}
	for _, item := range req.Items {
		if item.Quantity < 1 {
			writeError(w, r, http.StatusBadRequest, "item quantity must be at least 1")
			return
		}
	}

	items := make([]domain.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, domain.OrderItem{
			ProductID:      item.ProductID,
			Quantity:       item.Quantity,
			PriceAtTime:    item.Price,
			CarbonKgAtTime: item.CarbonKg,
			Packaging:      item.Packaging,
		})
	}

	res, err := h.Service.Checkout(r.Context(), services.CheckoutRequest{
		CustomerName: req.CustomerName,
		Address: domain.Address{
			Label:      req.Address.Label,
			Coordinate: domain.Coordinate{Lat: req.Address.Lat, Lng: req.Address.Lng},
		},
		TimeSlot:    slot,
		Items:       items,
		TotalAmount: req.TotalAmount,
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, dto.CheckoutResponse{
		OrderID:     res.OrderID,
		CO2SavedG:   res.CO2SavedG,
		RewardCoins: res.RewardCoins,
		BatchSize:   res.BatchSize,
	})
}
