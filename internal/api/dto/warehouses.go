package dto

type CreateWarehouseRequest struct {
	Name    string  `json:"name"`
	Address Address `json:"address"`
}

type WarehouseResponse struct {
	WarehouseID string  `json:"warehouse_id"`
	Name        string  `json:"name"`
	Address     Address `json:"address"`
}

type ListWarehousesResponse struct {
	Warehouses []WarehouseResponse `json:"warehouses"`
}
