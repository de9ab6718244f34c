// Package emissions estimates delivery CO2 from distance and vehicle class.
//
// The model is linear: grams = km * rate. No telemetry feed exists, so a
// static per-km factor table stands in for real engine data. The table is
// injected at construction so deployments can tune rates per fleet.
package emissions

import (
	"fmt"

	"eco-delivery-service/internal/domain"
)

// DefaultRateGPerKm is the petrol reference rate applied when the vehicle
// type is unspecified.
const DefaultRateGPerKm = 120.0

// DefaultRates returns the built-in emission factor table in g/km.
func DefaultRates() map[domain.VehicleType]float64 {
	return map[domain.VehicleType]float64{
		domain.VehiclePetrol: 120,
		domain.VehicleDiesel: 140,
		domain.VehicleEV:     0,
	}
}

// Model converts distances into CO2 grams. Side effect free.
type Model struct {
	rates       map[domain.VehicleType]float64
	defaultRate float64
}

func NewModel(rates map[domain.VehicleType]float64, defaultRate float64) *Model {
	if rates == nil {
		rates = DefaultRates()
	}
	if defaultRate <= 0 {
		defaultRate = DefaultRateGPerKm
	}
	return &Model{rates: rates, defaultRate: defaultRate}
}

// CO2Grams returns the estimated emission for distanceKm travelled by the
// given vehicle class. VehicleUnspecified uses the default rate; any other
// type missing from the table is an ErrInvalidInput, never a silent default.
func (m *Model) CO2Grams(distanceKm float64, vehicle domain.VehicleType) (float64, error) {
	if distanceKm < 0 {
		return 0, fmt.Errorf("co2 grams: negative distance %v: %w", distanceKm, domain.ErrInvalidInput)
	}

	if vehicle == domain.VehicleUnspecified {
		return distanceKm * m.defaultRate, nil
	}

	rate, ok := m.rates[vehicle]
	if !ok {
		return 0, fmt.Errorf("co2 grams: unknown vehicle type %q: %w", vehicle, domain.ErrInvalidInput)
	}
	return distanceKm * rate, nil
}

// Fixed packaging contributions in kg, used only for product-level footprint
// estimates, never for route emissions.
var packagingCO2Kg = map[string]float64{
	"plastic":   2,
	"cardboard": 1,
	"glass":     3,
}

// PackagingCO2Kg returns the fixed CO2 contribution of a packaging type.
func PackagingCO2Kg(packaging string) (float64, error) {
	kg, ok := packagingCO2Kg[packaging]
	if !ok {
		return 0, fmt.Errorf("packaging co2: unknown packaging %q: %w", packaging, domain.ErrInvalidInput)
	}
	return kg, nil
}
