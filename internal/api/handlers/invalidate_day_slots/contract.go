package invalidate_day_slots

import (
	"context"

	invalidateDaySlots "github.com/m04kA/SMC-BookingCalendar/internal/usecase/invalidate_day_slots"
)

type InvalidateDaySlotsUseCase interface {
	Execute(ctx context.Context, req *invalidateDaySlots.Request) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
