package controller

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-BookingCalendar/internal/availability"
	"github.com/m04kA/SMC-BookingCalendar/internal/domain"
)

// Config полная конфигурация календаря одного мастера
type Config struct {
	Availability           availability.Config
	ServiceDurationMinutes int
	SlotIntervalMinutes    int
	Locale                 string
	// Location часовой пояс, в котором считается "сегодня". nil = time.Local
	Location *time.Location
}

// ConfigFromSettings собирает конфигурацию контроллера из общих настроек календаря
// и исключений мастера
func ConfigFromSettings(settings domain.CalendarSettings, exceptions []*domain.DateException) Config {
	return Config{
		Availability:           availability.ConfigFor(settings, exceptions),
		ServiceDurationMinutes: settings.ServiceDurationMinutes,
		SlotIntervalMinutes:    settings.SlotIntervalMinutes,
		Locale:                 settings.Locale,
		Location:               settings.Location,
	}
}

// withDefaults подставляет значения по умолчанию и проверяет диапазоны
func (c Config) withDefaults() (Config, error) {
	if c.ServiceDurationMinutes == 0 {
		c.ServiceDurationMinutes = domain.DefaultServiceDurationMinutes
	}
	if c.SlotIntervalMinutes == 0 {
		c.SlotIntervalMinutes = domain.DefaultSlotIntervalMinutes
	}
	if c.Locale == "" {
		c.Locale = domain.DefaultLocale
	}
	if c.Location == nil {
		c.Location = time.Local
	}

	if c.ServiceDurationMinutes < domain.MinSlotMinutes || c.ServiceDurationMinutes > domain.MaxSlotMinutes {
		return Config{}, fmt.Errorf("%w: serviceDurationMinutes must be between %d and %d",
			ErrInvalidConfig, domain.MinSlotMinutes, domain.MaxSlotMinutes)
	}
	if c.SlotIntervalMinutes < domain.MinSlotMinutes || c.SlotIntervalMinutes > domain.MaxSlotMinutes {
		return Config{}, fmt.Errorf("%w: slotIntervalMinutes must be between %d and %d",
			ErrInvalidConfig, domain.MinSlotMinutes, domain.MaxSlotMinutes)
	}

	return c, nil
}
