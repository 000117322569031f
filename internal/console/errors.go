package console

import "errors"

var (
	// ErrUnknownCommand возвращается для неизвестной команды
	ErrUnknownCommand = errors.New("console: unknown command")

	// ErrUsage возвращается при неверных аргументах команды
	ErrUsage = errors.New("console: invalid arguments")
)
