package slotservice

// DaySlotsResponse ответ сервиса со слотами на дату
type DaySlotsResponse struct {
	ProfessionalID int64     `json:"professionalId"`
	Date           string    `json:"date"`
	Slots          []DaySlot `json:"slots"`
}

// DaySlot слот в ответе сервиса
type DaySlot struct {
	Time            string `json:"time"`
	DurationMinutes int    `json:"durationMinutes"`
	Available       bool   `json:"available"`
	Reason          string `json:"reason,omitempty"`
}

// ExceptionsResponse ответ сервиса с исключениями календаря
type ExceptionsResponse struct {
	ProfessionalID int64       `json:"professionalId"`
	Exceptions     []Exception `json:"exceptions"`
}

// Exception исключение календаря в ответе сервиса
type Exception struct {
	Date string  `json:"date"`
	Kind string  `json:"kind"`
	Note *string `json:"note,omitempty"`
}

// ErrorResponse модель ошибки от сервиса
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
