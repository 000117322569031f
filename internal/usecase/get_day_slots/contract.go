package get_day_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BookingCalendar/internal/domain"
	"github.com/m04kA/SMC-BookingCalendar/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetActiveByDate получает активные бронирования мастера на дату
	GetActiveByDate(ctx context.Context, professionalID int64, date types.DateKey) ([]*domain.Booking, error)
}

// ExceptionsRepository интерфейс репозитория исключений календаря
type ExceptionsRepository interface {
	GetByProfessional(ctx context.Context, professionalID int64, blockedFrom types.DateKey) ([]*domain.DateException, error)
}

// SlotsCache кэш слотов на день (без учета минимального времени до записи)
type SlotsCache interface {
	Get(ctx context.Context, professionalID int64, date types.DateKey) ([]domain.Slot, bool, error)
	Set(ctx context.Context, professionalID int64, date types.DateKey, slots []domain.Slot) error
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
