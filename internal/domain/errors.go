package domain

import "errors"

var (
	// ErrInvalidWorkingHours is returned for malformed or inverted working hours
	ErrInvalidWorkingHours = errors.New("domain: invalid working hours")

	// ErrInvalidBookingWindow is returned for out-of-range booking window bounds
	ErrInvalidBookingWindow = errors.New("domain: invalid booking window")

	// ErrInvalidSlotSettings is returned for out-of-range service duration or slot interval
	ErrInvalidSlotSettings = errors.New("domain: invalid slot settings")
)
