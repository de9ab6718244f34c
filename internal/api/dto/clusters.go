package dto

type ClusterResponse struct {
	WarehouseID        string       `json:"warehouse_id"`
	TimeSlot           string       `json:"time_slot"`
	Date               string       `json:"date"`
	OrderIDs           []string     `json:"order_ids"`
	Route              []Coordinate `json:"route"`
	TotalDistanceKm    float64      `json:"total_distance_km"`
	TotalDurationSec   int          `json:"total_duration_sec"`
	TotalCO2G          float64      `json:"total_co2_g"`
	SensitiveZoneCount int          `json:"sensitive_zone_count"`
}

type ListClustersResponse struct {
	Clusters []ClusterResponse `json:"clusters"`
}
