// Package availability decides whether a calendar date can be selected for booking.
package availability

import (
	"fmt"

	"github.com/m04kA/SMC-BookingCalendar/internal/calendar"
	"github.com/m04kA/SMC-BookingCalendar/internal/domain"
	"github.com/m04kA/SMC-BookingCalendar/pkg/types"
)

// Config is the validated availability configuration of one professional
type Config struct {
	WorkingHours domain.WorkingHours
	Window       domain.BookingWindowPolicy
	BlockedDates domain.DateSet
	// AllowedDates, when non-empty, replaces the weekday working-hours check
	AllowedDates domain.DateSet
}

// Policy classifies dates against a Config
type Policy struct {
	cfg Config
}

// NewPolicy validates the configuration once and returns a policy
func NewPolicy(cfg Config) (*Policy, error) {
	if err := cfg.WorkingHours.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Window.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if cfg.BlockedDates == nil {
		cfg.BlockedDates = domain.DateSet{}
	}
	if cfg.AllowedDates == nil {
		cfg.AllowedDates = domain.DateSet{}
	}
	return &Policy{cfg: cfg}, nil
}

// Config returns the policy configuration
func (p *Policy) Config() Config {
	return p.cfg
}

// Classify decides whether date is selectable while viewing the given month.
// Checks run in a fixed order and the first failing one wins:
// out of month, past date, too far ahead / too soon, blocked,
// allow-list (when set), weekday working hours.
func (p *Policy) Classify(date, today types.DateKey, viewed types.YearMonth) Decision {
	if !viewed.Contains(date) {
		return reject(ReasonOutOfMonth)
	}
	return p.ClassifyDate(date, today)
}

// ClassifyDate is Classify without the viewed-month check
func (p *Policy) ClassifyDate(date, today types.DateKey) Decision {
	if date.Before(today) && !p.cfg.Window.AllowPastDates {
		return reject(ReasonPastDate)
	}

	diff := calendar.DaysBetween(today, date)
	if p.cfg.Window.HasAdvanceBookingLimit() && diff > p.cfg.Window.MaxAdvanceDays {
		return reject(ReasonTooFarAhead)
	}
	// past dates only get here when AllowPastDates is set
	if diff >= 0 && diff < p.cfg.Window.MinAdvanceDays {
		return reject(ReasonTooSoon)
	}

	if p.cfg.BlockedDates.Contains(date) {
		return reject(ReasonBlocked)
	}

	if p.cfg.AllowedDates.Len() > 0 {
		if p.cfg.AllowedDates.Contains(date) {
			return accept()
		}
		return reject(ReasonNoWorkingHours)
	}

	if !p.cfg.WorkingHours.ForDate(date).IsOpen {
		return reject(ReasonNoWorkingHours)
	}
	return accept()
}
