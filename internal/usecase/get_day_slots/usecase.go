package get_day_slots

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-BookingCalendar/internal/availability"
	"github.com/m04kA/SMC-BookingCalendar/internal/domain"
	"github.com/m04kA/SMC-BookingCalendar/internal/slots"
	"github.com/m04kA/SMC-BookingCalendar/pkg/types"
)

// UseCase use case для получения слотов мастера на день
type UseCase struct {
	bookingRepo    BookingRepository
	exceptionsRepo ExceptionsRepository
	cache          SlotsCache
	settings       domain.CalendarSettings
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case. cache может быть nil.
func NewUseCase(
	bookingRepo BookingRepository,
	exceptionsRepo ExceptionsRepository,
	cache SlotsCache,
	settings domain.CalendarSettings,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:    bookingRepo,
		exceptionsRepo: exceptionsRepo,
		cache:          cache,
		settings:       settings,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute выполняет use case получения слотов на день
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetDaySlots: professional=%d, date=%s", req.ProfessionalID, req.Date)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetDaySlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Текущее время в часовом поясе календаря
	now := uc.timeProvider.Now().In(uc.settings.Location)
	today := types.DateKeyFromTime(now)

	// 3. Проверяем, что дата доступна для записи
	decision, err := uc.classify(ctx, req.ProfessionalID, req.Date, today)
	if err != nil {
		return nil, err
	}
	if !decision.Selectable {
		uc.logger.Warn("GetDaySlots: date %s is not selectable for professional=%d: %s",
			req.Date, req.ProfessionalID, decision.Reason)
		return nil, fmt.Errorf("%w: %s", ErrDateNotSelectable, decision.Reason)
	}

	// 4. Слоты с учетом бронирований
	daySlots, err := uc.daySlots(ctx, req.ProfessionalID, req.Date)
	if err != nil {
		return nil, err
	}

	// 5. На сегодня убираем слоты, до которых осталось меньше минимального времени
	daySlots = slots.ApplyNotice(daySlots, req.Date, now, uc.settings.MinNoticeMinutes)

	uc.logger.Info("GetDaySlots: generated %d slots (%d available) for professional=%d, date=%s",
		len(daySlots), countAvailable(daySlots), req.ProfessionalID, req.Date)

	return &Response{
		ProfessionalID: req.ProfessionalID,
		Date:           req.Date,
		Slots:          daySlots,
	}, nil
}

// classify загружает исключения мастера и проверяет дату
func (uc *UseCase) classify(ctx context.Context, professionalID int64, date, today types.DateKey) (availability.Decision, error) {
	exceptions, err := uc.exceptionsRepo.GetByProfessional(ctx, professionalID, uc.settings.BlockedFrom(today))
	if err != nil {
		uc.logger.Error("GetDaySlots: failed to get exceptions for professional=%d: %v", professionalID, err)
		return availability.Decision{}, fmt.Errorf("%w: failed to get exceptions: %v", ErrInternal, err)
	}

	policy, err := availability.NewPolicy(availability.ConfigFor(uc.settings, exceptions))
	if err != nil {
		uc.logger.Error("GetDaySlots: invalid availability config: %v", err)
		return availability.Decision{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	return policy.ClassifyDate(date, today), nil
}

// daySlots возвращает слоты на день из кэша или строит их по рабочим часам и бронированиям
func (uc *UseCase) daySlots(ctx context.Context, professionalID int64, date types.DateKey) ([]domain.Slot, error) {
	if uc.cache != nil {
		cached, ok, err := uc.cache.Get(ctx, professionalID, date)
		if err != nil {
			// кэш недоступен - считаем слоты заново
			uc.logger.Warn("GetDaySlots: slots cache get failed: %v", err)
		} else if ok {
			return cached, nil
		}
	}

	bookings, err := uc.bookingRepo.GetActiveByDate(ctx, professionalID, date)
	if err != nil {
		uc.logger.Error("GetDaySlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	schedule := uc.settings.WorkingHours.ForDate(date)
	generated := slots.Generate(schedule, uc.settings.ServiceDurationMinutes, uc.settings.SlotIntervalMinutes)
	generated = slots.MarkOccupied(generated, bookings, uc.settings.MaxConcurrentBookings)

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, professionalID, date, generated); err != nil {
			uc.logger.Warn("GetDaySlots: slots cache set failed: %v", err)
		}
	}

	return generated, nil
}

func countAvailable(daySlots []domain.Slot) int {
	count := 0
	for _, s := range daySlots {
		if s.Available {
			count++
		}
	}
	return count
}
