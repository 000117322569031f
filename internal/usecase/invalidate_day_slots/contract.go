package invalidate_day_slots

import (
	"context"

	"github.com/m04kA/SMC-BookingCalendar/pkg/types"
)

// SlotsCache кэш слотов на день
type SlotsCache interface {
	Invalidate(ctx context.Context, professionalID int64, date types.DateKey) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
