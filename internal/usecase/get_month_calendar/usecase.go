package get_month_calendar

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-BookingCalendar/internal/availability"
	"github.com/m04kA/SMC-BookingCalendar/internal/calendar"
	"github.com/m04kA/SMC-BookingCalendar/internal/domain"
	"github.com/m04kA/SMC-BookingCalendar/pkg/types"
)

// UseCase use case для получения календаря мастера на месяц
type UseCase struct {
	bookingRepo    BookingRepository
	exceptionsRepo ExceptionsRepository
	settings       domain.CalendarSettings
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	exceptionsRepo ExceptionsRepository,
	settings domain.CalendarSettings,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:    bookingRepo,
		exceptionsRepo: exceptionsRepo,
		settings:       settings,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute выполняет use case получения календаря на месяц
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetMonthCalendar: professional=%d, month=%s", req.ProfessionalID, req.Month)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetMonthCalendar: validation failed: %v", err)
		return nil, err
	}

	today := types.DateKeyFromTime(uc.timeProvider.Now().In(uc.settings.Location))
	cells := calendar.MonthGrid(req.Month)
	first, last := cells[0].Date, cells[len(cells)-1].Date

	// 2. Исключения мастера: разрешенные целиком, заблокированные с той же границы, что и для слотов дня
	exceptions, err := uc.exceptionsRepo.GetByProfessional(ctx, req.ProfessionalID, uc.settings.BlockedFrom(today))
	if err != nil {
		uc.logger.Error("GetMonthCalendar: failed to get exceptions for professional=%d: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: failed to get exceptions: %v", ErrInternal, err)
	}

	policy, err := availability.NewPolicy(availability.ConfigFor(uc.settings, exceptions))
	if err != nil {
		uc.logger.Error("GetMonthCalendar: invalid availability config: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	// 3. Загруженность дней сетки
	counts, err := uc.bookingRepo.CountActiveByPeriod(ctx, req.ProfessionalID, first, last)
	if err != nil {
		uc.logger.Error("GetMonthCalendar: failed to count bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to count bookings: %v", ErrInternal, err)
	}

	locale := req.Locale
	if locale == "" {
		locale = uc.settings.Locale
	}

	days := make([]Day, len(cells))
	selectable := 0
	for i, cell := range cells {
		decision := policy.Classify(cell.Date, today, req.Month)
		if decision.Selectable {
			selectable++
		}
		days[i] = Day{
			Date:           cell.Date,
			InCurrentMonth: cell.InCurrentMonth,
			IsToday:        cell.Date == today,
			Selectable:     decision.Selectable,
			Reason:         decision.Reason,
			WeekdayName:    calendar.WeekdayName(cell.Date, locale),
			BookingsCount:  counts[cell.Date],
		}
	}

	uc.logger.Info("GetMonthCalendar: %d selectable days for professional=%d, month=%s",
		selectable, req.ProfessionalID, req.Month)

	return &Response{
		ProfessionalID: req.ProfessionalID,
		Month:          req.Month,
		Today:          today,
		Days:           days,
	}, nil
}
