package get_exceptions

import (
	"context"

	getExceptions "github.com/m04kA/SMC-BookingCalendar/internal/usecase/get_exceptions"
)

type GetExceptionsUseCase interface {
	Execute(ctx context.Context, req *getExceptions.Request) (*getExceptions.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
