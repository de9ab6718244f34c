package dto

import "time"

type OrderItemResponse struct {
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	CarbonKg  float64 `json:"carbon_kg"`
	Packaging string  `json:"packaging,omitempty"`
}

type OrderResponse struct {
	OrderID              string              `json:"order_id"`
	CustomerName         string              `json:"customer_name"`
	Address              Address             `json:"address"`
	Items                []OrderItemResponse `json:"items"`
	TotalAmount          float64             `json:"total_amount"`
	TimeSlot             string              `json:"time_slot"`
	CreatedAt            time.Time           `json:"created_at"`
	WarehouseID          string              `json:"warehouse_id"`
	ProductCO2G          float64             `json:"product_co2_g"`
	EstimatedCO2gIfAlone float64             `json:"estimated_co2_g_if_alone"`
	ActualCO2gInCluster  float64             `json:"actual_co2_g_in_cluster"`
	CO2SavedG            float64             `json:"co2_saved_g"`
}

type ListOrdersResponse struct {
	Orders []OrderResponse `json:"orders"`
}
