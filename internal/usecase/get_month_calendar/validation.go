package get_month_calendar

import (
	"fmt"

	"github.com/m04kA/SMC-BookingCalendar/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ProfessionalID <= 0 {
		return fmt.Errorf("%w: professionalID must be positive", ErrInvalidInput)
	}

	if _, err := types.NewYearMonth(req.Month.Year, req.Month.Month); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return nil
}
