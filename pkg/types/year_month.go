package types

import (
	"fmt"
	"time"
)

// YearMonthLayout формат YearMonth (YYYY-MM)
const YearMonthLayout = "2006-01"

// YearMonth календарный месяц
type YearMonth struct {
	Year  int
	Month time.Month
}

// NewYearMonth создает месяц с проверкой диапазона
func NewYearMonth(year int, month time.Month) (YearMonth, error) {
	if year < 1 || year > 9999 || month < time.January || month > time.December {
		return YearMonth{}, fmt.Errorf("%w: %04d-%02d", ErrInvalidDateFormat, year, int(month))
	}
	return YearMonth{Year: year, Month: month}, nil
}

// ParseYearMonth парсит строку YYYY-MM
func ParseYearMonth(s string) (YearMonth, error) {
	d, err := ParseDateKey(s + "-01")
	if err != nil {
		return YearMonth{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, s)
	}
	return d.YearMonth(), nil
}

// AddMonths сдвигает месяц на delta (может быть отрицательным)
func (ym YearMonth) AddMonths(delta int) YearMonth {
	total := ym.Year*12 + int(ym.Month-1) + delta
	return YearMonth{Year: total / 12, Month: time.Month(total%12 + 1)}
}

// FirstDay возвращает первое число месяца
func (ym YearMonth) FirstDay() DateKey {
	return DateKey{year: ym.Year, month: ym.Month, day: 1}
}

// Days возвращает количество дней в месяце
func (ym YearMonth) Days() int {
	return daysIn(ym.Year, ym.Month)
}

// Contains проверяет, что дата принадлежит месяцу
func (ym YearMonth) Contains(d DateKey) bool {
	return d.year == ym.Year && d.month == ym.Month
}

// String возвращает месяц в формате YYYY-MM
func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month))
}
