package places

import (
	"context"
	"sync"

	"eco-delivery-service/internal/domain"
)

// MockPlacesProvider returns a fixed count per category and a fixed AQI.
// Counts calls so tests can assert sampling and cache behavior.
type MockPlacesProvider struct {
	CountPerCategory map[string]int
	AQIValue         int
	Err              error

	mu    sync.Mutex
	calls int
}

func (m *MockPlacesProvider) NearbyCount(ctx context.Context, point domain.Coordinate, radiusM int, category string) (int, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	if m.Err != nil {
		return 0, m.Err
	}
	return m.CountPerCategory[category], nil
}

func (m *MockPlacesProvider) AQI(ctx context.Context, point domain.Coordinate) (int, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	return m.AQIValue, nil
}

func (m *MockPlacesProvider) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
