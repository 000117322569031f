package get_day_slots

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrDateNotSelectable возвращается, когда дата недоступна для записи
	// (прошла, вне окна бронирования, заблокирована, нерабочий день)
	ErrDateNotSelectable = errors.New("date is not selectable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
