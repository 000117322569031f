package types

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MinutesPerDay количество минут в сутках
const MinutesPerDay = 24 * 60

// ErrInvalidTimeFormat возвращается при некорректном времени (ожидается HH:MM)
var ErrInvalidTimeFormat = errors.New("types: invalid time format, expected HH:MM")

// TimeOfDay время суток в минутах от полуночи (0..1439)
type TimeOfDay int

// NewTimeOfDay создает время из часов и минут
func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("%w: %02d:%02d", ErrInvalidTimeFormat, hour, minute)
	}
	return TimeOfDay(hour*60 + minute), nil
}

// ParseTimeOfDay парсит строку формата HH:MM
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || len(hh) != 2 || len(mm) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}

	hour, err := strconv.Atoi(hh)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	minute, err := strconv.Atoi(mm)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}

	return NewTimeOfDay(hour, minute)
}

// MustParseTimeOfDay как ParseTimeOfDay, но паникует на ошибке. Только для констант и тестов.
func MustParseTimeOfDay(s string) TimeOfDay {
	t, err := ParseTimeOfDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

// Hour возвращает часы
func (t TimeOfDay) Hour() int {
	return int(t) / 60
}

// Minute возвращает минуты
func (t TimeOfDay) Minute() int {
	return int(t) % 60
}

// Minutes возвращает количество минут от полуночи
func (t TimeOfDay) Minutes() int {
	return int(t)
}

// String возвращает время в формате HH:MM
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// Validate проверяет, что время лежит в пределах суток
func (t TimeOfDay) Validate() error {
	if t < 0 || int(t) >= MinutesPerDay {
		return fmt.Errorf("%w: %d minutes", ErrInvalidTimeFormat, int(t))
	}
	return nil
}

// AddMinutes прибавляет минуты. Результат может выйти за 24:00,
// это нужно для проверки конца слота относительно закрытия.
func (t TimeOfDay) AddMinutes(minutes int) TimeOfDay {
	return t + TimeOfDay(minutes)
}

// IsBefore проверяет, что t строго раньше other
func (t TimeOfDay) IsBefore(other TimeOfDay) bool {
	return t < other
}

// IsAfter проверяет, что t строго позже other
func (t TimeOfDay) IsAfter(other TimeOfDay) bool {
	return t > other
}

// MarshalText реализует encoding.TextMarshaler
func (t TimeOfDay) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText реализует encoding.TextUnmarshaler
func (t *TimeOfDay) UnmarshalText(text []byte) error {
	parsed, err := ParseTimeOfDay(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
