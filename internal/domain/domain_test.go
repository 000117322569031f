package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingCalendar/pkg/types"
)

func TestParseDaySchedule(t *testing.T) {
	schedule, err := ParseDaySchedule("09:00-18:00")
	require.NoError(t, err)
	assert.True(t, schedule.IsOpen)
	assert.Equal(t, types.MustParseTimeOfDay("09:00"), schedule.Start)
	assert.Equal(t, types.MustParseTimeOfDay("18:00"), schedule.End)
	assert.Equal(t, "09:00-18:00", schedule.String())

	closed, err := ParseDaySchedule("Closed")
	require.NoError(t, err)
	assert.False(t, closed.IsOpen)
	assert.Equal(t, ClosedDay, closed.String())

	for _, bad := range []string{"09:00", "18:00-09:00", "09:00-09:00", "9-18", "09:00-25:00"} {
		_, err := ParseDaySchedule(bad)
		assert.ErrorIs(t, err, ErrInvalidWorkingHours, bad)
	}
}

func TestWorkingHours_ForDate(t *testing.T) {
	hours := WorkingHours{
		Monday:   Open(types.MustParseTimeOfDay("09:00"), types.MustParseTimeOfDay("18:00")),
		Saturday: Open(types.MustParseTimeOfDay("09:00"), types.MustParseTimeOfDay("14:00")),
	}

	// 2026-10-12 is a Monday
	assert.True(t, hours.ForDate(types.MustDateKey(2026, time.October, 12)).IsOpen)
	assert.False(t, hours.ForDate(types.MustDateKey(2026, time.October, 13)).IsOpen)
	assert.Equal(t, "09:00-14:00", hours.ForWeekday(time.Saturday).String())
	assert.False(t, hours.IsAlwaysClosed())
	assert.True(t, WorkingHours{}.IsAlwaysClosed())
	assert.NoError(t, hours.Validate())
}

func TestBookingWindowPolicy_Validate(t *testing.T) {
	assert.NoError(t, BookingWindowPolicy{MinAdvanceDays: 1, MaxAdvanceDays: 30}.Validate())
	assert.NoError(t, BookingWindowPolicy{MinAdvanceDays: 3}.Validate())
	assert.ErrorIs(t, BookingWindowPolicy{MinAdvanceDays: 10, MaxAdvanceDays: 5}.Validate(), ErrInvalidBookingWindow)
	assert.ErrorIs(t, BookingWindowPolicy{MinAdvanceDays: -1}.Validate(), ErrInvalidBookingWindow)
	assert.ErrorIs(t, BookingWindowPolicy{MaxAdvanceDays: 400}.Validate(), ErrInvalidBookingWindow)
}

func TestSlot_Overlaps(t *testing.T) {
	slot := Slot{Time: types.MustParseTimeOfDay("11:30"), DurationMinutes: 30}

	assert.True(t, slot.Overlaps(types.MustParseTimeOfDay("11:20"), types.MustParseTimeOfDay("11:40")))
	assert.False(t, slot.Overlaps(types.MustParseTimeOfDay("11:00"), types.MustParseTimeOfDay("11:30")))
	assert.False(t, slot.Overlaps(types.MustParseTimeOfDay("12:00"), types.MustParseTimeOfDay("12:30")))
}

func TestFindAvailable(t *testing.T) {
	slots := []Slot{
		{Time: types.MustParseTimeOfDay("09:00"), DurationMinutes: 60, Available: true},
		{Time: types.MustParseTimeOfDay("09:30"), DurationMinutes: 60, Available: false, Reason: SlotReasonBooked},
	}

	_, ok := FindAvailable(slots, types.MustParseTimeOfDay("09:00"))
	assert.True(t, ok)
	_, ok = FindAvailable(slots, types.MustParseTimeOfDay("09:30"))
	assert.False(t, ok)
	_, ok = FindAvailable(slots, types.MustParseTimeOfDay("10:00"))
	assert.False(t, ok)
}

func TestSplitExceptions(t *testing.T) {
	holiday := types.MustDateKey(2026, time.December, 25)
	extra := types.MustDateKey(2026, time.December, 27)

	blocked, allowed := SplitExceptions([]*DateException{
		{Date: holiday, Kind: ExceptionBlocked},
		{Date: extra, Kind: ExceptionAllowed},
	})

	assert.True(t, blocked.Contains(holiday))
	assert.False(t, blocked.Contains(extra))
	assert.Equal(t, 1, allowed.Len())
	assert.True(t, allowed.Contains(extra))
}

func TestCalendarSettings_BlockedFrom(t *testing.T) {
	today := types.MustDateKey(2026, time.October, 15)

	assert.Equal(t, today, CalendarSettings{}.BlockedFrom(today))

	settings := CalendarSettings{Window: BookingWindowPolicy{AllowPastDates: true}}
	assert.True(t, settings.BlockedFrom(today).IsZero())
}

func TestBooking_IsActive(t *testing.T) {
	assert.True(t, (&Booking{Status: StatusConfirmed}).IsActive())
	assert.False(t, (&Booking{Status: StatusNoShow}).IsActive())
	assert.False(t, (&Booking{Status: StatusCancelledByClient}).IsActive())
}

func TestCalendarSettings_Validate(t *testing.T) {
	valid := CalendarSettings{
		WorkingHours:           WorkingHours{Monday: Open(types.MustParseTimeOfDay("09:00"), types.MustParseTimeOfDay("18:00"))},
		ServiceDurationMinutes: 60,
		SlotIntervalMinutes:    30,
		MaxConcurrentBookings:  1,
		MinNoticeMinutes:       60,
		Location:               time.UTC,
	}
	assert.NoError(t, valid.Validate())

	bad := valid
	bad.SlotIntervalMinutes = 0
	assert.ErrorIs(t, bad.Validate(), ErrInvalidSlotSettings)

	bad = valid
	bad.MaxConcurrentBookings = 0
	assert.ErrorIs(t, bad.Validate(), ErrInvalidSlotSettings)

	bad = valid
	bad.Location = nil
	assert.ErrorIs(t, bad.Validate(), ErrInvalidSlotSettings)

	bad = valid
	bad.Window = BookingWindowPolicy{MinAdvanceDays: 3, MaxAdvanceDays: 1}
	assert.ErrorIs(t, bad.Validate(), ErrInvalidBookingWindow)
}

func TestDateSet_Union(t *testing.T) {
	a := types.MustDateKey(2026, time.January, 1)
	b := types.MustDateKey(2026, time.January, 2)

	var empty DateSet
	union := NewDateSet(a).Union(NewDateSet(a, b)).Union(empty)

	assert.Equal(t, 2, union.Len())
	assert.True(t, union.Contains(b))
}
