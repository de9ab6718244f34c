package domain

import "fmt"

// TimeSlot is one of the three fixed delivery windows offered at checkout.
type TimeSlot string

const (
	SlotMorning   TimeSlot = "morning"
	SlotAfternoon TimeSlot = "afternoon"
	SlotEvening   TimeSlot = "evening"
)

// AllSlots returns the slots in their canonical enumeration order.
// Slot ranking ties are broken by this order (stable sort).
func AllSlots() []TimeSlot {
	return []TimeSlot{SlotMorning, SlotAfternoon, SlotEvening}
}

// ParseTimeSlot validates a wire-level slot value.
func ParseTimeSlot(s string) (TimeSlot, error) {
	switch TimeSlot(s) {
	case SlotMorning, SlotAfternoon, SlotEvening:
		return TimeSlot(s), nil
	}
	return "", fmt.Errorf("parse time slot %q: %w", s, ErrInvalidInput)
}
