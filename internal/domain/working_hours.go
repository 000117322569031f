package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-BookingCalendar/pkg/types"
)

// ClosedDay is the textual form of a closed weekday in configuration
const ClosedDay = "closed"

// DaySchedule is the working schedule of a single weekday
type DaySchedule struct {
	IsOpen bool
	Start  types.TimeOfDay
	End    types.TimeOfDay
}

// Closed returns the schedule of a day without working hours
func Closed() DaySchedule {
	return DaySchedule{}
}

// Open returns the schedule of a working day
func Open(start, end types.TimeOfDay) DaySchedule {
	return DaySchedule{IsOpen: true, Start: start, End: end}
}

// ParseDaySchedule parses "HH:MM-HH:MM" or "closed"
func ParseDaySchedule(s string) (DaySchedule, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, ClosedDay) {
		return Closed(), nil
	}

	startStr, endStr, ok := strings.Cut(s, "-")
	if !ok {
		return DaySchedule{}, fmt.Errorf("%w: %q, expected HH:MM-HH:MM or %q", ErrInvalidWorkingHours, s, ClosedDay)
	}

	start, err := types.ParseTimeOfDay(startStr)
	if err != nil {
		return DaySchedule{}, fmt.Errorf("%w: %v", ErrInvalidWorkingHours, err)
	}
	end, err := types.ParseTimeOfDay(endStr)
	if err != nil {
		return DaySchedule{}, fmt.Errorf("%w: %v", ErrInvalidWorkingHours, err)
	}

	schedule := Open(start, end)
	if err := schedule.Validate(); err != nil {
		return DaySchedule{}, err
	}
	return schedule, nil
}

// Validate checks that an open day ends after it starts
func (d DaySchedule) Validate() error {
	if !d.IsOpen {
		return nil
	}
	if !d.End.IsAfter(d.Start) {
		return fmt.Errorf("%w: end %s must be after start %s", ErrInvalidWorkingHours, d.End, d.Start)
	}
	return nil
}

// String returns "HH:MM-HH:MM" or "closed"
func (d DaySchedule) String() string {
	if !d.IsOpen {
		return ClosedDay
	}
	return d.Start.String() + "-" + d.End.String()
}

// WorkingHours is the weekly working-hours rule of a professional
type WorkingHours struct {
	Monday    DaySchedule
	Tuesday   DaySchedule
	Wednesday DaySchedule
	Thursday  DaySchedule
	Friday    DaySchedule
	Saturday  DaySchedule
	Sunday    DaySchedule
}

// ForWeekday returns the schedule for the given weekday
func (w WorkingHours) ForWeekday(weekday time.Weekday) DaySchedule {
	switch weekday {
	case time.Monday:
		return w.Monday
	case time.Tuesday:
		return w.Tuesday
	case time.Wednesday:
		return w.Wednesday
	case time.Thursday:
		return w.Thursday
	case time.Friday:
		return w.Friday
	case time.Saturday:
		return w.Saturday
	case time.Sunday:
		return w.Sunday
	default:
		return Closed()
	}
}

// ForDate returns the schedule for the weekday of the date
func (w WorkingHours) ForDate(date types.DateKey) DaySchedule {
	return w.ForWeekday(date.Weekday())
}

// Validate checks every weekday
func (w WorkingHours) Validate() error {
	for day := time.Sunday; day <= time.Saturday; day++ {
		if err := w.ForWeekday(day).Validate(); err != nil {
			return fmt.Errorf("%s: %w", day, err)
		}
	}
	return nil
}

// IsAlwaysClosed returns true if no weekday has working hours
func (w WorkingHours) IsAlwaysClosed() bool {
	for day := time.Sunday; day <= time.Saturday; day++ {
		if w.ForWeekday(day).IsOpen {
			return false
		}
	}
	return true
}
