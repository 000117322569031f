package slotservice

import "errors"

var (
	// ErrDateNotSelectable возвращается, когда сервис отклонил дату (422)
	ErrDateNotSelectable = errors.New("slotservice client: date is not selectable")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("slotservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("slotservice client: invalid response")
)
