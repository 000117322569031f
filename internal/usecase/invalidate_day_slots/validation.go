package invalidate_day_slots

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ProfessionalID <= 0 {
		return fmt.Errorf("%w: professionalID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}
