package emissions

import (
	"errors"
	"testing"

	"eco-delivery-service/internal/domain"
)

func TestCO2Grams(t *testing.T) {
	m := NewModel(nil, 0)

	cases := []struct {
		name    string
		km      float64
		vehicle domain.VehicleType
		want    float64
		wantErr bool
	}{
		{"default rate", 10, domain.VehicleUnspecified, 1200, false},
		{"petrol", 10, domain.VehiclePetrol, 1200, false},
		{"diesel", 10, domain.VehicleDiesel, 1400, false},
		{"ev", 10, domain.VehicleEV, 0, false},
		{"zero distance", 0, domain.VehiclePetrol, 0, false},
		{"unknown type", 10, domain.VehicleType("horse"), 0, true},
		{"negative distance", -1, domain.VehiclePetrol, 0, true},
	}

	for _, tc := range cases {
		got, err := m.CO2Grams(tc.km, tc.vehicle)
		if tc.wantErr {
			if !errors.Is(err, domain.ErrInvalidInput) {
				t.Errorf("%s: err = %v, want ErrInvalidInput", tc.name, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: unexpected error: %v", tc.name, err)
			continue
		}
		if got != tc.want {
			t.Errorf("%s: co2 = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestCustomRateTable(t *testing.T) {
	m := NewModel(map[domain.VehicleType]float64{domain.VehicleEV: 5}, 100)

	got, err := m.CO2Grams(2, domain.VehicleEV)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 10 {
		t.Errorf("co2 = %v, want 10", got)
	}

	// Petrol is absent from the custom table: closed enumeration, no fallback.
	if _, err := m.CO2Grams(2, domain.VehiclePetrol); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for missing table entry, got %v", err)
	}
}

func TestPackagingCO2Kg(t *testing.T) {
	kg, err := PackagingCO2Kg("cardboard")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if kg != 1 {
		t.Errorf("cardboard = %v, want 1", kg)
	}

	if _, err := PackagingCO2Kg("styrofoam"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}
