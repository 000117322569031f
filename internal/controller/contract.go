package controller

import (
	"time"

	"github.com/m04kA/SMC-BookingCalendar/internal/domain"
	"github.com/m04kA/SMC-BookingCalendar/internal/slotcache"
	"github.com/m04kA/SMC-BookingCalendar/pkg/types"
)

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

// Metrics интерфейс метрик кэша слотов
type Metrics = slotcache.Metrics

// Колбэки, через которые хост узнает о событиях календаря
type (
	DateSelectFunc  func(date types.DateKey)
	TimeSelectFunc  func(t types.TimeOfDay, date types.DateKey)
	SlotsLoadedFunc func(date types.DateKey, slots []domain.Slot)
	SlotsErrorFunc  func(date types.DateKey, err error)
)

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
