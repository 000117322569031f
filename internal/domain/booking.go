package domain

import (
	"time"

	"github.com/m04kA/SMC-BookingCalendar/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending                 BookingStatus = "pending"
	StatusConfirmed               BookingStatus = "confirmed"
	StatusInProgress              BookingStatus = "in_progress"
	StatusCompleted               BookingStatus = "completed"
	StatusCancelledByClient       BookingStatus = "cancelled_by_client"
	StatusCancelledByProfessional BookingStatus = "cancelled_by_professional"
	StatusNoShow                  BookingStatus = "no_show"
)

// Booking is an existing home-service appointment of a professional.
// The calendar only reads bookings to mark occupied slots.
type Booking struct {
	ID              int64
	ProfessionalID  int64
	ClientID        int64
	ServiceID       int64
	BookingDate     types.DateKey
	StartTime       types.TimeOfDay
	DurationMinutes int
	Status          BookingStatus
	CreatedAt       time.Time
}

// IsActive returns true if the booking is in an active state
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelledByClient &&
		b.Status != StatusCancelledByProfessional &&
		b.Status != StatusNoShow
}

// EndTime returns the time the booking ends
func (b *Booking) EndTime() types.TimeOfDay {
	return b.StartTime.AddMinutes(b.DurationMinutes)
}
