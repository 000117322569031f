package types

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

// DateLayout формат DateKey (YYYY-MM-DD)
const DateLayout = "2006-01-02"

// ErrInvalidDateFormat возвращается при некорректной дате (ожидается YYYY-MM-DD)
var ErrInvalidDateFormat = errors.New("types: invalid date format, expected YYYY-MM-DD")

// DateKey календарная дата без времени и часового пояса.
// Хранит только компоненты год/месяц/день: дата никогда не получается
// через конвертацию timestamp в UTC, иначе возле полуночи дата "съезжает" на день.
type DateKey struct {
	year  int
	month time.Month
	day   int
}

// NewDateKey создает дату из компонентов и проверяет, что такая дата существует
func NewDateKey(year int, month time.Month, day int) (DateKey, error) {
	if year < 1 || year > 9999 || month < time.January || month > time.December || day < 1 {
		return DateKey{}, fmt.Errorf("%w: %04d-%02d-%02d", ErrInvalidDateFormat, year, int(month), day)
	}
	if day > daysIn(year, month) {
		return DateKey{}, fmt.Errorf("%w: %04d-%02d-%02d", ErrInvalidDateFormat, year, int(month), day)
	}
	return DateKey{year: year, month: month, day: day}, nil
}

// MustDateKey как NewDateKey, но паникует на ошибке. Только для тестов и констант.
func MustDateKey(year int, month time.Month, day int) DateKey {
	d, err := NewDateKey(year, month, day)
	if err != nil {
		panic(err)
	}
	return d
}

// ParseDateKey парсит строку YYYY-MM-DD покомпонентно
func ParseDateKey(s string) (DateKey, error) {
	if len(s) != len(DateLayout) || s[4] != '-' || s[7] != '-' {
		return DateKey{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, s)
	}

	year, err := strconv.Atoi(s[0:4])
	if err != nil {
		return DateKey{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, s)
	}
	month, err := strconv.Atoi(s[5:7])
	if err != nil {
		return DateKey{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, s)
	}
	day, err := strconv.Atoi(s[8:10])
	if err != nil {
		return DateKey{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, s)
	}

	return NewDateKey(year, time.Month(month), day)
}

// DateKeyFromTime берет календарную дату из t в его собственной локации
func DateKeyFromTime(t time.Time) DateKey {
	y, m, d := t.Date()
	return DateKey{year: y, month: m, day: d}
}

// Year возвращает год
func (d DateKey) Year() int { return d.year }

// Month возвращает месяц
func (d DateKey) Month() time.Month { return d.month }

// Day возвращает день месяца
func (d DateKey) Day() int { return d.day }

// Date возвращает все три компонента
func (d DateKey) Date() (int, time.Month, int) {
	return d.year, d.month, d.day
}

// IsZero проверяет, что дата не задана
func (d DateKey) IsZero() bool {
	return d == DateKey{}
}

// String возвращает дату в формате YYYY-MM-DD
func (d DateKey) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.year, int(d.month), d.day)
}

// midnightUTC проекция даты на полночь UTC. UTC не имеет переходов
// на летнее время, поэтому арифметика в днях здесь точная.
func (d DateKey) midnightUTC() time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC)
}

// In возвращает начало дня в указанной локации
func (d DateKey) In(loc *time.Location) time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, loc)
}

// At возвращает момент времени t в этот день в указанной локации
func (d DateKey) At(t TimeOfDay, loc *time.Location) time.Time {
	return time.Date(d.year, d.month, d.day, t.Hour(), t.Minute(), 0, 0, loc)
}

// AddDays сдвигает дату на n дней (n может быть отрицательным)
func (d DateKey) AddDays(n int) DateKey {
	return DateKeyFromTime(d.midnightUTC().AddDate(0, 0, n))
}

// Weekday возвращает день недели
func (d DateKey) Weekday() time.Weekday {
	return d.midnightUTC().Weekday()
}

// Compare возвращает -1, 0 или 1
func (d DateKey) Compare(other DateKey) int {
	switch {
	case d.year != other.year:
		return cmpInt(d.year, other.year)
	case d.month != other.month:
		return cmpInt(int(d.month), int(other.month))
	default:
		return cmpInt(d.day, other.day)
	}
}

// Before проверяет, что d строго раньше other
func (d DateKey) Before(other DateKey) bool {
	return d.Compare(other) < 0
}

// After проверяет, что d строго позже other
func (d DateKey) After(other DateKey) bool {
	return d.Compare(other) > 0
}

// DaysUntil возвращает знаковое количество дней от d до other (other - d)
func (d DateKey) DaysUntil(other DateKey) int {
	return int(other.midnightUTC().Sub(d.midnightUTC()).Hours() / 24)
}

// YearMonth возвращает месяц, которому принадлежит дата
func (d DateKey) YearMonth() YearMonth {
	return YearMonth{Year: d.year, Month: d.month}
}

// MarshalText реализует encoding.TextMarshaler
func (d DateKey) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText реализует encoding.TextUnmarshaler
func (d *DateKey) UnmarshalText(text []byte) error {
	parsed, err := ParseDateKey(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
