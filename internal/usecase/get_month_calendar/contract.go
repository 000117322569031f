package get_month_calendar

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BookingCalendar/internal/domain"
	"github.com/m04kA/SMC-BookingCalendar/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// CountActiveByPeriod считает активные бронирования по датам периода
	CountActiveByPeriod(ctx context.Context, professionalID int64, from, to types.DateKey) (map[types.DateKey]int, error)
}

// ExceptionsRepository интерфейс репозитория исключений календаря
type ExceptionsRepository interface {
	GetByProfessional(ctx context.Context, professionalID int64, blockedFrom types.DateKey) ([]*domain.DateException, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
