package slotcache

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BookingCalendar/internal/domain"
	"github.com/m04kA/SMC-BookingCalendar/pkg/types"
)

// Loader загружает слоты на дату. Может быть вызван из отдельной горутины.
type Loader func(ctx context.Context, date types.DateKey) ([]domain.Slot, error)

// Metrics интерфейс метрик кэша
type Metrics interface {
	SlotCacheLookup(result string)
	SlotLoadFinished(outcome string, duration time.Duration)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// SettleFunc вызывается после фиксации результата последнего запроса на дату.
// Для устаревших запросов не вызывается. err != nil означает сбой загрузчика.
// Вызывается из горутины загрузки и не должна ждать загрузок той же даты.
type SettleFunc func(date types.DateKey, slots []domain.Slot, err error)

type nopMetrics struct{}

func (nopMetrics) SlotCacheLookup(string)                  {}
func (nopMetrics) SlotLoadFinished(string, time.Duration) {}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
