package get_month_calendar

import (
	getMonthCalendar "github.com/m04kA/SMC-BookingCalendar/internal/usecase/get_month_calendar"
	"github.com/m04kA/SMC-BookingCalendar/pkg/types"
)

// MonthCalendarResponse HTTP response model
type MonthCalendarResponse struct {
	ProfessionalID int64         `json:"professionalId"`
	Month          string        `json:"month"`
	Today          string        `json:"today"`
	Days           []CalendarDay `json:"days"`
}

// CalendarDay модель ячейки календаря
type CalendarDay struct {
	Date           string `json:"date"`
	Weekday        string `json:"weekday"`
	InCurrentMonth bool   `json:"inCurrentMonth"`
	IsToday        bool   `json:"isToday"`
	Selectable     bool   `json:"selectable"`
	Reason         string `json:"reason,omitempty"`
	BookingsCount  int    `json:"bookingsCount"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getMonthCalendar.Response) *MonthCalendarResponse {
	days := make([]CalendarDay, len(resp.Days))
	for i, day := range resp.Days {
		days[i] = CalendarDay{
			Date:           day.Date.String(),
			Weekday:        day.WeekdayName,
			InCurrentMonth: day.InCurrentMonth,
			IsToday:        day.IsToday,
			Selectable:     day.Selectable,
			Reason:         string(day.Reason),
			BookingsCount:  day.BookingsCount,
		}
	}

	return &MonthCalendarResponse{
		ProfessionalID: resp.ProfessionalID,
		Month:          resp.Month.String(),
		Today:          resp.Today.String(),
		Days:           days,
	}
}

// ToUseCaseRequest создает запрос use case из параметров запроса
func ToUseCaseRequest(professionalID int64, monthStr, locale string) (*getMonthCalendar.Request, error) {
	month, err := types.ParseYearMonth(monthStr)
	if err != nil {
		return nil, err
	}

	return &getMonthCalendar.Request{
		ProfessionalID: professionalID,
		Month:          month,
		Locale:         locale,
	}, nil
}
