package domain

// Default configuration values
const (
	DefaultServiceDurationMinutes = 60
	DefaultSlotIntervalMinutes    = 30
	DefaultMaxConcurrentBookings  = 1
	DefaultMinAdvanceDays         = 0
	DefaultMaxAdvanceDays         = 0 // 0 = unlimited
	DefaultMinNoticeMinutes       = 60
	DefaultLocale                 = "en_US"
)

// Business validation constants
const (
	MinSlotMinutes        = 5
	MaxSlotMinutes        = 480 // 8 hours
	MinAdvanceDays        = 0
	MaxAdvanceDays        = 365 // 1 year
	MinConcurrentBookings = 1
	MaxConcurrentBookings = 100
	MaxNoticeMinutes      = 10080 // 1 week
)

// InactiveStatuses lists bookings that no longer occupy time
var InactiveStatuses = []BookingStatus{
	StatusCancelledByClient,
	StatusCancelledByProfessional,
	StatusNoShow,
}

// ActiveStatuses lists bookings that occupy time
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
	StatusCompleted,
}
