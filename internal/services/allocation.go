package services

import (
	"fmt"
	"math"

	"eco-delivery-service/internal/domain"
)

// AllocatePerOrder splits the eco route's total emission evenly across the
// batch. The split is deliberately not distance-weighted: every participant
// pays the same share regardless of where its stop sits on the loop. This is
// a documented fairness trade-off, not a bug.
func AllocatePerOrder(ecoCO2g float64, batchSize int) (float64, error) {
	if batchSize < 1 {
		return 0, fmt.Errorf("allocate: batch size %d: %w", batchSize, domain.ErrInvalidInput)
	}
	if ecoCO2g < 0 {
		return 0, fmt.Errorf("allocate: negative co2 %v: %w", ecoCO2g, domain.ErrInvalidInput)
	}
	return ecoCO2g / float64(batchSize), nil
}

// CO2Saved is the candidate's solo baseline minus its batched share. The
// result may be negative when a detour to a distant peer costs more than a
// solo run; it is recorded as-is, never clamped.
func CO2Saved(soloCO2g, perOrderCO2g float64) float64 {
	return soloCO2g - perOrderCO2g
}

// RewardCoins converts saved grams into GreenCoins:
// floor(saved / 100 * coinsPer100g), floored at zero. A reward is a grant,
// not a debt, so negative savings earn nothing rather than a penalty.
func RewardCoins(co2SavedG, coinsPer100G float64) int64 {
	coins := int64(math.Floor(co2SavedG / 100.0 * coinsPer100G))
	if coins < 0 {
		return 0
	}
	return coins
}
