// Package calendar содержит чистую календарную арифметику: сетку месяца,
// разницу дат и локализованные названия дней недели. Состояния нет.
package calendar

import (
	"time"

	"github.com/goodsign/monday"

	"github.com/m04kA/SMC-BookingCalendar/pkg/types"
)

// GridSize количество ячеек в сетке месяца (6 полных недель)
const GridSize = 42

// Cell ячейка сетки месяца
type Cell struct {
	Date           types.DateKey
	InCurrentMonth bool
}

// StartOfMonthGridOffset возвращает индекс дня недели (0=Вс..6=Сб) первого числа месяца
func StartOfMonthGridOffset(year int, month time.Month) int {
	return int(types.YearMonth{Year: year, Month: month}.FirstDay().Weekday())
}

// MonthGrid возвращает ровно 42 последовательных даты, начиная с воскресенья
// в день первого числа месяца или до него
func MonthGrid(ym types.YearMonth) []Cell {
	first := ym.FirstDay()
	start := first.AddDays(-StartOfMonthGridOffset(ym.Year, ym.Month))

	cells := make([]Cell, GridSize)
	for i := range cells {
		d := start.AddDays(i)
		cells[i] = Cell{
			Date:           d,
			InCurrentMonth: ym.Contains(d),
		}
	}
	return cells
}

// DateKeyOf собирает дату из компонентов
func DateKeyOf(year int, month time.Month, day int) (types.DateKey, error) {
	return types.NewDateKey(year, month, day)
}

// ParseDateKey парсит дату YYYY-MM-DD
func ParseDateKey(key string) (types.DateKey, error) {
	return types.ParseDateKey(key)
}

// DaysBetween возвращает знаковое количество дней b - a
func DaysBetween(a, b types.DateKey) int {
	return a.DaysUntil(b)
}

// SameDay проверяет, что даты совпадают
func SameDay(a, b types.DateKey) bool {
	return a == b
}

// DaysInMonth возвращает количество дней в месяце
func DaysInMonth(ym types.YearMonth) int {
	return ym.Days()
}

// WeekdayName возвращает полное название дня недели на языке locale (например "ru_RU").
// Пустая локаль означает en_US.
func WeekdayName(date types.DateKey, locale string) string {
	if locale == "" {
		locale = string(monday.LocaleEnUS)
	}
	return monday.Format(date.In(time.UTC), "Monday", monday.Locale(locale))
}
