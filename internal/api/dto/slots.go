package dto

type SuggestSlotRequest struct {
	Address Address `json:"address"`
}

type SlotScore struct {
	TimeSlot  string  `json:"time_slot"`
	PeerCount int     `json:"peer_count"`
	SavingsKg float64 `json:"savings_kg"`
}

type SuggestSlotResponse struct {
	BestSlot string      `json:"best_slot"`
	Slots    []SlotScore `json:"slots"`
}
