package domain

import "errors"

// Error taxonomy shared across services and adapters.
// Adapters translate external failures into these sentinels so callers can
// branch with errors.Is without knowing provider details.
var (
	// ErrInvalidInput marks malformed coordinates, empty stop lists or
	// missing required fields. Rejected before any external call.
	ErrInvalidInput = errors.New("invalid input")

	// ErrRoutingUnavailable marks a directions/places backend failure or
	// timeout. Recoverable: callers retry once, then fall back to
	// solo-delivery semantics rather than failing checkout.
	ErrRoutingUnavailable = errors.New("routing unavailable")

	// ErrNoWarehouse is returned when no depot exists in the system.
	// Fatal for checkout; never silently defaulted.
	ErrNoWarehouse = errors.New("no warehouse available")

	// ErrNotFound marks a missing entity lookup.
	ErrNotFound = errors.New("not found")
)
