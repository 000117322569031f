package invalidate_day_slots

import (
	"context"
	"fmt"
)

// UseCase use case сброса закэшированных слотов на день.
// Вызывается сервисом бронирований после создания или отмены записи.
type UseCase struct {
	cache  SlotsCache
	logger Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(cache SlotsCache, logger Logger) *UseCase {
	return &UseCase{
		cache:  cache,
		logger: logger,
	}
}

// Execute выполняет use case сброса слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) error {
	uc.logger.Info("InvalidateDaySlots: professional=%d, date=%s", req.ProfessionalID, req.Date)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("InvalidateDaySlots: validation failed: %v", err)
		return err
	}

	if err := uc.cache.Invalidate(ctx, req.ProfessionalID, req.Date); err != nil {
		uc.logger.Error("InvalidateDaySlots: failed to invalidate slots for professional=%d, date=%s: %v",
			req.ProfessionalID, req.Date, err)
		return fmt.Errorf("%w: failed to invalidate slots: %v", ErrInternal, err)
	}

	return nil
}
