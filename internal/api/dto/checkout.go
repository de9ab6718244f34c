package dto

type CheckoutItem struct {
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	CarbonKg  float64 `json:"carbon_kg"`
	Packaging string  `json:"packaging,omitempty"`
}

type CheckoutRequest struct {
	CustomerName string         `json:"customer_name"`
	Address      Address        `json:"address"`
	TimeSlot     string         `json:"time_slot"`
	Items        []CheckoutItem `json:"items"`
	TotalAmount  float64        `json:"total_amount"`
}

type CheckoutResponse struct {
	OrderID     string  `json:"order_id"`
	CO2SavedG   float64 `json:"co2_saved_g"`
	RewardCoins int64   `json:"reward_coins"`
	BatchSize   int     `json:"batch_size"`
}
