package controller

import "errors"

var (
	// ErrInvalidSelection возвращается при попытке выбрать недоступную дату или время.
	// Состояние календаря при этом не меняется.
	ErrInvalidSelection = errors.New("controller: invalid selection")

	// ErrUnknownKey возвращается для клавиш, которые календарь не обрабатывает
	ErrUnknownKey = errors.New("controller: unknown key")

	// ErrInvalidConfig возвращается при некорректной конфигурации календаря
	ErrInvalidConfig = errors.New("controller: invalid config")
)
