package availability

// Reason explains why a date is not selectable
type Reason string

const (
	ReasonNone           Reason = ""
	ReasonOutOfMonth     Reason = "out_of_month"
	ReasonPastDate       Reason = "past_date"
	ReasonTooFarAhead    Reason = "too_far_ahead"
	ReasonTooSoon        Reason = "too_soon"
	ReasonBlocked        Reason = "blocked"
	ReasonNoWorkingHours Reason = "no_working_hours"
)

// Decision is the result of classifying a date
type Decision struct {
	Selectable bool
	Reason     Reason
}

func accept() Decision {
	return Decision{Selectable: true}
}

func reject(reason Reason) Decision {
	return Decision{Selectable: false, Reason: reason}
}
