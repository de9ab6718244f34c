package handlers

import (
	"net/http"

	"eco-delivery-service/internal/api/dto"
	"eco-delivery-service/internal/ports"
)

// RewardsHandler exposes the GreenCoins balance and redemption.
type RewardsHandler struct {
	Repo ports.RewardsRepository
}

func (h *RewardsHandler) Balance(w http.ResponseWriter, r *http.Request) {
	coins, err := h.Repo.Balance(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, dto.RewardsBalanceResponse{Coins: coins})
}

func (h *RewardsHandler) Redeem(w http.ResponseWriter, r *http.Request) {
	var req dto.RedeemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if req.Coins < 1 {
		writeError(w, r, http.StatusBadRequest, "coins must be at least 1")
		return
	}

	balance, err := h.Repo.Balance(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	if balance < req.Coins {
		writeError(w, r, http.StatusConflict, "insufficient coins")
		return
	}

	remaining, err := h.Repo.AddCoins(r.Context(), -req.Coins)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.RedeemResponse{Redeemed: req.Coins, Coins: remaining})
}
