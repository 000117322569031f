package get_exceptions

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ProfessionalID <= 0 {
		return fmt.Errorf("%w: professionalID must be positive", ErrInvalidInput)
	}
	return nil
}
