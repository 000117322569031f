// Package slots строит список временных слотов на день.
package slots

import (
	"time"

	"github.com/m04kA/SMC-BookingCalendar/internal/domain"
	"github.com/m04kA/SMC-BookingCalendar/pkg/types"
)

// Generate генерирует слоты с начала рабочего дня с шагом slotIntervalMinutes.
// Слот попадает в список, только если услуга длительностью serviceDurationMinutes
// целиком укладывается до конца рабочего дня. Все слоты доступны: перерывы и
// существующие записи учитывает загрузчик хоста, а не генератор.
func Generate(schedule domain.DaySchedule, serviceDurationMinutes, slotIntervalMinutes int) []domain.Slot {
	result := make([]domain.Slot, 0)

	// Выходной день
	if !schedule.IsOpen {
		return result
	}
	if serviceDurationMinutes <= 0 || slotIntervalMinutes <= 0 {
		return result
	}

	for start := schedule.Start; !start.AddMinutes(serviceDurationMinutes).IsAfter(schedule.End); start = start.AddMinutes(slotIntervalMinutes) {
		result = append(result, domain.Slot{
			Time:            start,
			DurationMinutes: serviceDurationMinutes,
			Available:       true,
		})
	}

	return result
}

// MarkOccupied помечает недоступными слоты, с которыми пересекается
// maxConcurrent и более активных бронирований.
// Граничащие интервалы (одно заканчивается там, где начинается другое) не пересекаются.
func MarkOccupied(slots []domain.Slot, bookings []*domain.Booking, maxConcurrent int) []domain.Slot {
	if maxConcurrent < domain.MinConcurrentBookings {
		maxConcurrent = domain.MinConcurrentBookings
	}

	result := make([]domain.Slot, len(slots))
	for i, slot := range slots {
		result[i] = slot
		if !slot.Available {
			continue
		}
		if countOverlappingBookings(slot, bookings) >= maxConcurrent {
			result[i].Available = false
			result[i].Reason = domain.SlotReasonBooked
		}
	}
	return result
}

// ApplyNotice помечает недоступными слоты на сегодня, которые начинаются
// раньше, чем now + minNoticeMinutes. now должен быть в локации календаря.
func ApplyNotice(slots []domain.Slot, date types.DateKey, now time.Time, minNoticeMinutes int) []domain.Slot {
	result := make([]domain.Slot, len(slots))
	copy(result, slots)

	// Если дата не сегодня, фильтр не нужен
	if types.DateKeyFromTime(now) != date {
		return result
	}

	current, err := types.NewTimeOfDay(now.Hour(), now.Minute())
	if err != nil {
		return result
	}
	minAllowed := current.AddMinutes(minNoticeMinutes)

	for i := range result {
		if result[i].Available && result[i].Time.IsBefore(minAllowed) {
			result[i].Available = false
			result[i].Reason = domain.SlotReasonTooLate
		}
	}
	return result
}

// countOverlappingBookings подсчитывает активные бронирования, пересекающиеся со слотом
func countOverlappingBookings(slot domain.Slot, bookings []*domain.Booking) int {
	count := 0
	for _, booking := range bookings {
		// Пропускаем неактивные бронирования
		if !booking.IsActive() {
			continue
		}
		if slot.Overlaps(booking.StartTime, booking.EndTime()) {
			count++
		}
	}
	return count
}
