package get_month_calendar

import (
	"github.com/m04kA/SMC-BookingCalendar/internal/availability"
	"github.com/m04kA/SMC-BookingCalendar/pkg/types"
)

// Request модель запроса на получение календаря мастера на месяц
type Request struct {
	ProfessionalID int64
	Month          types.YearMonth
	// Locale локаль названий дней недели, пустая - локаль из настроек
	Locale string
}

// Response модель ответа: сетка 6x7, начиная с воскресенья
type Response struct {
	ProfessionalID int64
	Month          types.YearMonth
	Today          types.DateKey
	Days           []Day
}

// Day ячейка календаря
type Day struct {
	Date           types.DateKey
	InCurrentMonth bool
	IsToday        bool
	Selectable     bool
	Reason         availability.Reason
	WeekdayName    string
	BookingsCount  int
}
