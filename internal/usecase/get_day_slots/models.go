package get_day_slots

import (
	"github.com/m04kA/SMC-BookingCalendar/internal/domain"
	"github.com/m04kA/SMC-BookingCalendar/pkg/types"
)

// Request модель запроса на получение слотов мастера на день
type Request struct {
	ProfessionalID int64
	Date           types.DateKey
}

// Response модель ответа со слотами на день.
// Пустой список - день доступен, но свободного времени нет.
type Response struct {
	ProfessionalID int64
	Date           types.DateKey
	Slots          []domain.Slot
}
