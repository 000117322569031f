package availability

import "github.com/m04kA/SMC-BookingCalendar/internal/domain"

// ConfigFor merges a professional's date exceptions into the shared calendar settings
func ConfigFor(settings domain.CalendarSettings, exceptions []*domain.DateException) Config {
	blocked, allowed := domain.SplitExceptions(exceptions)
	return Config{
		WorkingHours: settings.WorkingHours,
		Window:       settings.Window,
		BlockedDates: settings.BlockedDates.Union(blocked),
		AllowedDates: settings.AllowedDates.Union(allowed),
	}
}
