package invalidate_day_slots

import "github.com/m04kA/SMC-BookingCalendar/pkg/types"

// Request модель запроса на сброс закэшированных слотов мастера на дату
type Request struct {
	ProfessionalID int64
	Date           types.DateKey
}
