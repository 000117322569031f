package domain

import "fmt"

// BookingWindowPolicy bounds which dates are bookable relative to today
type BookingWindowPolicy struct {
	MinAdvanceDays int
	MaxAdvanceDays int // 0 = unlimited
	AllowPastDates bool
}

// HasAdvanceBookingLimit returns true if there's a limit on how far in advance bookings can be made
func (p BookingWindowPolicy) HasAdvanceBookingLimit() bool {
	return p.MaxAdvanceDays > 0
}

// Validate checks the window bounds
func (p BookingWindowPolicy) Validate() error {
	if p.MinAdvanceDays < MinAdvanceDays || p.MinAdvanceDays > MaxAdvanceDays {
		return fmt.Errorf("%w: minAdvanceDays must be between %d and %d", ErrInvalidBookingWindow, MinAdvanceDays, MaxAdvanceDays)
	}
	if p.MaxAdvanceDays < MinAdvanceDays || p.MaxAdvanceDays > MaxAdvanceDays {
		return fmt.Errorf("%w: maxAdvanceDays must be between %d and %d", ErrInvalidBookingWindow, MinAdvanceDays, MaxAdvanceDays)
	}
	if p.HasAdvanceBookingLimit() && p.MinAdvanceDays > p.MaxAdvanceDays {
		return fmt.Errorf("%w: minAdvanceDays %d exceeds maxAdvanceDays %d", ErrInvalidBookingWindow, p.MinAdvanceDays, p.MaxAdvanceDays)
	}
	return nil
}
