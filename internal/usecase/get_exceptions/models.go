package get_exceptions

import "github.com/m04kA/SMC-BookingCalendar/internal/domain"

// Request модель запроса на получение исключений календаря мастера
type Request struct {
	ProfessionalID int64
}

// Response исключения, которые влияют на доступность дат начиная с сегодняшнего дня
type Response struct {
	ProfessionalID int64
	Exceptions     []*domain.DateException
}
