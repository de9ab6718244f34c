package services

import (
	"fmt"
	"sync"
	"time"

	"eco-delivery-service/internal/domain"
)

// slotLocks serializes checkout per (warehouse, slot, day). Two
// near-simultaneous checkouts in the same window would otherwise each read
// the peer set before either has persisted its own order, and both would
// price themselves as if alone. The lock spans peer read through persist.
//
// Keys accumulate one mutex per warehouse/slot/day triple; the set is small
// and bounded by active windows, so no eviction is needed within a process
// lifetime of days.
type slotLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newSlotLocks() *slotLocks {
	return &slotLocks{locks: make(map[string]*sync.Mutex)}
}

func slotKey(warehouseID string, slot domain.TimeSlot, day time.Time) string {
	return fmt.Sprintf("%s|%s|%s", warehouseID, slot, DayStart(day).Format("2006-01-02"))
}

// acquire returns the locked mutex for the key; the caller must Unlock it.
func (s *slotLocks) acquire(key string) *sync.Mutex {
	s.mu.Lock()
	m, ok := s.locks[key]
	if !ok {
		m = &sync.Mutex{}
		s.locks[key] = m
	}
	s.mu.Unlock()

	m.Lock()
	return m
}
