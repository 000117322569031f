package controller

import (
	"context"

	"github.com/m04kA/SMC-BookingCalendar/internal/slotcache"
)

// Option настройка контроллера
type Option func(*Controller)

// WithLoader задает загрузчик слотов хоста. Без него слоты строит генератор.
func WithLoader(loader slotcache.Loader) Option {
	return func(c *Controller) {
		c.loader = loader
	}
}

// WithOnDateSelect подписывает на выбор даты
func WithOnDateSelect(fn DateSelectFunc) Option {
	return func(c *Controller) {
		c.onDateSelect = fn
	}
}

// WithOnTimeSelect подписывает на выбор времени
func WithOnTimeSelect(fn TimeSelectFunc) Option {
	return func(c *Controller) {
		c.onTimeSelect = fn
	}
}

// WithOnSlotsLoaded подписывает на загрузку слотов
func WithOnSlotsLoaded(fn SlotsLoadedFunc) Option {
	return func(c *Controller) {
		c.onSlotsLoaded = fn
	}
}

// WithOnSlotsError подписывает на ошибки загрузчика
func WithOnSlotsError(fn SlotsErrorFunc) Option {
	return func(c *Controller) {
		c.onSlotsError = fn
	}
}

// WithTimeProvider подменяет источник текущего времени
func WithTimeProvider(tp TimeProvider) Option {
	return func(c *Controller) {
		if tp != nil {
			c.timeProvider = tp
		}
	}
}

// WithLogger подключает логгер
func WithLogger(l Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMetrics подключает метрики кэша слотов
func WithMetrics(m Metrics) Option {
	return func(c *Controller) {
		c.metrics = m
	}
}

// WithContext задает базовый контекст для вызовов загрузчика
func WithContext(ctx context.Context) Option {
	return func(c *Controller) {
		if ctx != nil {
			c.ctx = ctx
		}
	}
}

// SelectOption настройка SelectDate
type SelectOption func(*selectOptions)

type selectOptions struct {
	forceRefresh bool
}

// WithForceRefresh перезагружает слоты даты в обход кэша,
// вытесняя идущую загрузку
func WithForceRefresh() SelectOption {
	return func(o *selectOptions) {
		o.forceRefresh = true
	}
}
