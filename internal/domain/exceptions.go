package domain

import "github.com/m04kA/SMC-BookingCalendar/pkg/types"

// ExceptionKind distinguishes blocked dates from explicitly allowed dates
type ExceptionKind string

const (
	ExceptionBlocked ExceptionKind = "blocked"
	ExceptionAllowed ExceptionKind = "allowed"
)

// DateException is a per-professional calendar exception (holiday, extra working day)
type DateException struct {
	ProfessionalID int64
	Date           types.DateKey
	Kind           ExceptionKind
	Note           *string
}

// DateSet is a set of calendar dates
type DateSet map[types.DateKey]struct{}

// NewDateSet builds a set from a list of dates
func NewDateSet(dates ...types.DateKey) DateSet {
	set := make(DateSet, len(dates))
	for _, d := range dates {
		set[d] = struct{}{}
	}
	return set
}

// Contains reports whether the date is in the set
func (s DateSet) Contains(d types.DateKey) bool {
	_, ok := s[d]
	return ok
}

// Len returns the number of dates
func (s DateSet) Len() int {
	return len(s)
}

// SplitExceptions splits exceptions into blocked and allowed sets
func SplitExceptions(exceptions []*DateException) (blocked, allowed DateSet) {
	blocked, allowed = DateSet{}, DateSet{}
	for _, e := range exceptions {
		switch e.Kind {
		case ExceptionBlocked:
			blocked[e.Date] = struct{}{}
		case ExceptionAllowed:
			allowed[e.Date] = struct{}{}
		}
	}
	return blocked, allowed
}

// Union returns a new set holding the dates of both sets
func (s DateSet) Union(other DateSet) DateSet {
	result := make(DateSet, len(s)+len(other))
	for d := range s {
		result[d] = struct{}{}
	}
	for d := range other {
		result[d] = struct{}{}
	}
	return result
}
