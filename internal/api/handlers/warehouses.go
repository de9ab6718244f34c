package handlers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"eco-delivery-service/internal/api/dto"
	"eco-delivery-service/internal/domain"
	"eco-delivery-service/internal/ports"
)

// WarehouseHandler exposes depot listing and admin creation.
type WarehouseHandler struct {
	Repo ports.WarehouseRepository
}

func (h *WarehouseHandler) List(w http.ResponseWriter, r *http.Request) {
	warehouses, err := h.Repo.ListAll(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	res := dto.ListWarehousesResponse{Warehouses: make([]dto.WarehouseResponse, 0, len(warehouses))}
	for _, wh := range warehouses {
		res.Warehouses = append(res.Warehouses, toWarehouseResponse(wh))
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *WarehouseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateWarehouseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}

	if strings.TrimSpace(req.Name) == "" {
		writeError(w, r, http.StatusBadRequest, "name is required")
		return
	}
	location := domain.Address{
		Label:      req.Address.Label,
		Coordinate: domain.Coordinate{Lat: req.Address.Lat, Lng: req.Address.Lng},
	}
	if err := location.Validate(); err != nil {
		writeError(w, r, http.StatusBadRequest, "address coordinates out of range")
		return
	}

	warehouse := domain.Warehouse{
		ID:       uuid.NewString(),
		Name:     strings.TrimSpace(req.Name),
		Location: location,
	}
	if err := h.Repo.Create(r.Context(), &warehouse); err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, toWarehouseResponse(warehouse))
}

func toWarehouseResponse(wh domain.Warehouse) dto.WarehouseResponse {
	return dto.WarehouseResponse{
		WarehouseID: wh.ID,
		Name:        wh.Name,
		Address: dto.Address{
			Label: wh.Location.Label,
			Lat:   wh.Location.Lat,
			Lng:   wh.Location.Lng,
		},
	}
}
