package get_exceptions

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-BookingCalendar/internal/domain"
	"github.com/m04kA/SMC-BookingCalendar/pkg/types"
)

// UseCase use case для получения исключений календаря мастера.
// Клиенты объединяют их с общими настройками, чтобы проверять даты так же, как сервер.
type UseCase struct {
	exceptionsRepo ExceptionsRepository
	settings       domain.CalendarSettings
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	exceptionsRepo ExceptionsRepository,
	settings domain.CalendarSettings,
	logger Logger,
) *UseCase {
	return &UseCase{
		exceptionsRepo: exceptionsRepo,
		settings:       settings,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute выполняет use case получения исключений
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetExceptions: professional=%d", req.ProfessionalID)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetExceptions: validation failed: %v", err)
		return nil, err
	}

	// Граница та же, что при проверке дат для календаря и слотов
	today := types.DateKeyFromTime(uc.timeProvider.Now().In(uc.settings.Location))
	exceptions, err := uc.exceptionsRepo.GetByProfessional(ctx, req.ProfessionalID, uc.settings.BlockedFrom(today))
	if err != nil {
		uc.logger.Error("GetExceptions: failed to get exceptions for professional=%d: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: failed to get exceptions: %v", ErrInternal, err)
	}

	uc.logger.Info("GetExceptions: found %d exceptions for professional=%d", len(exceptions), req.ProfessionalID)

	return &Response{
		ProfessionalID: req.ProfessionalID,
		Exceptions:     exceptions,
	}, nil
}
