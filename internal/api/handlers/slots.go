package handlers

import (
	"context"
	"net/http"

	"eco-delivery-service/internal/api/dto"
	"eco-delivery-service/internal/domain"
	"eco-delivery-service/internal/services"
)

// SlotSuggester is the slice of the slot recommender this handler needs.
type SlotSuggester interface {
	SuggestSlots(ctx context.Context, address domain.Address) ([]services.SlotResult, error)
}

// SlotHandler scores delivery slots for a prospective address.
type SlotHandler struct {
	Service SlotSuggester
}

func (h *SlotHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	var req dto.SuggestSlotRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}

	results, err := h.Service.SuggestSlots(r.Context(), domain.Address{
		Label:      req.Address.Label,
		Coordinate: domain.Coordinate{Lat: req.Address.Lat, Lng: req.Address.Lng},
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	res := dto.SuggestSlotResponse{Slots: make([]dto.SlotScore, 0, len(results))}
	for _, s := range results {
		res.Slots = append(res.Slots, dto.SlotScore{
			TimeSlot:  string(s.TimeSlot),
			PeerCount: s.PeerCount,
			SavingsKg: s.SavingsKg,
		})
	}
	if len(res.Slots) > 0 {
		res.BestSlot = res.Slots[0].TimeSlot
	}

	writeJSON(w, r, http.StatusOK, res)
}
