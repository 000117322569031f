package get_exceptions

import (
	getExceptions "github.com/m04kA/SMC-BookingCalendar/internal/usecase/get_exceptions"
)

// ExceptionsResponse HTTP response model
type ExceptionsResponse struct {
	ProfessionalID int64           `json:"professionalId"`
	Exceptions     []DateException `json:"exceptions"`
}

// DateException модель исключения календаря
type DateException struct {
	Date string  `json:"date"`
	Kind string  `json:"kind"`
	Note *string `json:"note,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getExceptions.Response) *ExceptionsResponse {
	exceptions := make([]DateException, len(resp.Exceptions))
	for i, e := range resp.Exceptions {
		exceptions[i] = DateException{
			Date: e.Date.String(),
			Kind: string(e.Kind),
			Note: e.Note,
		}
	}

	return &ExceptionsResponse{
		ProfessionalID: resp.ProfessionalID,
		Exceptions:     exceptions,
	}
}
