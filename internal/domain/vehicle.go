package domain

import "fmt"

// VehicleType is a closed enumeration of delivery vehicle classes.
// Emission rates are keyed by vehicle type; unknown values are rejected
// rather than silently defaulted.
type VehicleType string

const (
	// VehicleUnspecified selects the deployment's default emission rate.
	VehicleUnspecified VehicleType = ""
	VehiclePetrol      VehicleType = "petrol"
	VehicleDiesel      VehicleType = "diesel"
	VehicleEV          VehicleType = "ev"
)

// ParseVehicleType validates a wire-level vehicle value.
// The empty string maps to VehicleUnspecified.
func ParseVehicleType(s string) (VehicleType, error) {
	switch VehicleType(s) {
	case VehicleUnspecified, VehiclePetrol, VehicleDiesel, VehicleEV:
		return VehicleType(s), nil
	}
	return "", fmt.Errorf("parse vehicle type %q: %w", s, ErrInvalidInput)
}
