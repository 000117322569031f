package domain

import "github.com/m04kA/SMC-BookingCalendar/pkg/types"

// Slot reasons reported for unavailable slots
const (
	SlotReasonBooked  = "booked"
	SlotReasonTooLate = "too_late"
)

// Slot represents a bookable time unit within a day
type Slot struct {
	Time            types.TimeOfDay
	DurationMinutes int
	Available       bool
	Reason          string // empty when Available
}

// End returns the time the slot ends (may exceed 24:00 for late slots)
func (s Slot) End() types.TimeOfDay {
	return s.Time.AddMinutes(s.DurationMinutes)
}

// Overlaps reports whether the slot intersects [start, end).
// Touching intervals do not overlap.
func (s Slot) Overlaps(start, end types.TimeOfDay) bool {
	return start.IsBefore(s.End()) && end.IsAfter(s.Time)
}

// FindAvailable returns the available slot starting at t, if any
func FindAvailable(slots []Slot, t types.TimeOfDay) (Slot, bool) {
	for _, slot := range slots {
		if slot.Time == t && slot.Available {
			return slot, true
		}
	}
	return Slot{}, false
}
