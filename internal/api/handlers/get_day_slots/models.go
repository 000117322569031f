package get_day_slots

import (
	getDaySlots "github.com/m04kA/SMC-BookingCalendar/internal/usecase/get_day_slots"
	"github.com/m04kA/SMC-BookingCalendar/pkg/types"
)

// DaySlotsResponse HTTP response model
type DaySlotsResponse struct {
	ProfessionalID int64     `json:"professionalId"`
	Date           string    `json:"date"`
	Slots          []DaySlot `json:"slots"`
}

// DaySlot модель временного слота
type DaySlot struct {
	Time            string `json:"time"`
	DurationMinutes int    `json:"durationMinutes"`
	Available       bool   `json:"available"`
	Reason          string `json:"reason,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getDaySlots.Response) *DaySlotsResponse {
	slots := make([]DaySlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = DaySlot{
			Time:            slot.Time.String(),
			DurationMinutes: slot.DurationMinutes,
			Available:       slot.Available,
			Reason:          slot.Reason,
		}
	}

	return &DaySlotsResponse{
		ProfessionalID: resp.ProfessionalID,
		Date:           resp.Date.String(),
		Slots:          slots,
	}
}

// ToUseCaseRequest создает запрос use case из параметров запроса
func ToUseCaseRequest(professionalID int64, dateStr string) (*getDaySlots.Request, error) {
	date, err := types.ParseDateKey(dateStr)
	if err != nil {
		return nil, err
	}

	return &getDaySlots.Request{
		ProfessionalID: professionalID,
		Date:           date,
	}, nil
}
