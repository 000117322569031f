package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-BookingCalendar/pkg/types"
)

// CalendarSettings is the booking calendar configuration shared by all professionals.
// Per-professional date exceptions are merged on top of BlockedDates and AllowedDates.
type CalendarSettings struct {
	WorkingHours           WorkingHours
	Window                 BookingWindowPolicy
	BlockedDates           DateSet
	AllowedDates           DateSet
	ServiceDurationMinutes int
	SlotIntervalMinutes    int
	MaxConcurrentBookings  int
	MinNoticeMinutes       int
	Locale                 string
	Location               *time.Location
}

// Validate checks the settings against business limits
func (s CalendarSettings) Validate() error {
	if err := s.WorkingHours.Validate(); err != nil {
		return err
	}
	if err := s.Window.Validate(); err != nil {
		return err
	}
	if s.ServiceDurationMinutes < MinSlotMinutes || s.ServiceDurationMinutes > MaxSlotMinutes {
		return fmt.Errorf("%w: serviceDurationMinutes must be between %d and %d",
			ErrInvalidSlotSettings, MinSlotMinutes, MaxSlotMinutes)
	}
	if s.SlotIntervalMinutes < MinSlotMinutes || s.SlotIntervalMinutes > MaxSlotMinutes {
		return fmt.Errorf("%w: slotIntervalMinutes must be between %d and %d",
			ErrInvalidSlotSettings, MinSlotMinutes, MaxSlotMinutes)
	}
	if s.MaxConcurrentBookings < MinConcurrentBookings || s.MaxConcurrentBookings > MaxConcurrentBookings {
		return fmt.Errorf("%w: maxConcurrentBookings must be between %d and %d",
			ErrInvalidSlotSettings, MinConcurrentBookings, MaxConcurrentBookings)
	}
	if s.MinNoticeMinutes < 0 || s.MinNoticeMinutes > MaxNoticeMinutes {
		return fmt.Errorf("%w: minNoticeMinutes must be between 0 and %d",
			ErrInvalidSlotSettings, MaxNoticeMinutes)
	}
	if s.Location == nil {
		return fmt.Errorf("%w: location is required", ErrInvalidSlotSettings)
	}
	return nil
}

// BlockedFrom is the earliest blocked exception that can affect classification.
// Earlier dates are already past unless the window allows them; the zero key means all dates.
// Allowed exceptions are never bounded: an empty allowed set switches weekday rules back on.
func (s CalendarSettings) BlockedFrom(today types.DateKey) types.DateKey {
	if s.Window.AllowPastDates {
		return types.DateKey{}
	}
	return today
}
