package controller

import (
	"github.com/m04kA/SMC-BookingCalendar/internal/availability"
	"github.com/m04kA/SMC-BookingCalendar/internal/calendar"
	"github.com/m04kA/SMC-BookingCalendar/pkg/types"
)

// State состояние календаря
type State int

const (
	// StateIdle дата не выбрана
	StateIdle State = iota
	// StateDateSelected выбрана дата, слоты загружаются или загружены
	StateDateSelected
	// StateSlotSelected выбраны дата и время
	StateSlotSelected
)

// String возвращает название состояния
func (s State) String() string {
	switch s {
	case StateDateSelected:
		return "date_selected"
	case StateSlotSelected:
		return "slot_selected"
	default:
		return "idle"
	}
}

// ViewState состояние отображения календаря.
// SelectedTime может быть задан только вместе с SelectedDate.
type ViewState struct {
	ViewedMonth  types.YearMonth
	SelectedDate *types.DateKey
	SelectedTime *types.TimeOfDay
}

// GridDay ячейка сетки месяца вместе с решением о доступности
type GridDay struct {
	calendar.Cell
	Decision    availability.Decision
	WeekdayName string
	IsToday     bool
	IsSelected  bool
}

// Key клавиша навигации
type Key string

const (
	KeyArrowLeft  Key = "ArrowLeft"
	KeyArrowRight Key = "ArrowRight"
	KeyArrowUp    Key = "ArrowUp"
	KeyArrowDown  Key = "ArrowDown"
	KeyPageUp     Key = "PageUp"
	KeyPageDown   Key = "PageDown"
	KeyHome       Key = "Home"
)
