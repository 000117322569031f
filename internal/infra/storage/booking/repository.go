package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-BookingCalendar/internal/domain"
	"github.com/m04kA/SMC-BookingCalendar/pkg/psqlbuilder"
	"github.com/m04kA/SMC-BookingCalendar/pkg/types"
)

var bookingColumns = []string{
	"id",
	"professional_id",
	"client_id",
	"service_id",
	"booking_date",
	"start_time",
	"duration_minutes",
	"status",
	"created_at",
}

// Repository репозиторий для чтения бронирований мастеров.
// Календарь только читает бронирования, создание записей - забота сервиса бронирования.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetActiveByDate получает активные бронирования мастера на дату, отсортированные по времени начала
func (r *Repository) GetActiveByDate(ctx context.Context, professionalID int64, date types.DateKey) ([]*domain.Booking, error) {
	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"professional_id": professionalID}).
		Where(squirrel.Eq{"booking_date": date.String()}).
		Where(squirrel.Eq{"status": activeStatuses()}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// CountActiveByPeriod считает активные бронирования мастера по датам периода [from, to].
// Даты без бронирований в результат не попадают.
func (r *Repository) CountActiveByPeriod(ctx context.Context, professionalID int64, from, to types.DateKey) (map[types.DateKey]int, error) {
	query, args, err := psqlbuilder.Select("booking_date", "COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{"professional_id": professionalID}).
		Where(squirrel.GtOrEq{"booking_date": from.String()}).
		Where(squirrel.LtOrEq{"booking_date": to.String()}).
		Where(squirrel.Eq{"status": activeStatuses()}).
		GroupBy("booking_date").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CountActiveByPeriod - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CountActiveByPeriod - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	counts := make(map[types.DateKey]int)
	for rows.Next() {
		var (
			bookingDate time.Time
			count       int
		)
		if err := rows.Scan(&bookingDate, &count); err != nil {
			return nil, fmt.Errorf("%w: CountActiveByPeriod - scan row: %v", ErrScanRow, err)
		}
		counts[types.DateKeyFromTime(bookingDate)] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CountActiveByPeriod - rows error: %v", ErrScanRow, err)
	}

	return counts, nil
}

// scanBookings сканирует строки результата в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		var (
			booking     domain.Booking
			bookingDate time.Time
			startTime   string
			createdAt   sql.NullTime
		)

		err := rows.Scan(
			&booking.ID,
			&booking.ProfessionalID,
			&booking.ClientID,
			&booking.ServiceID,
			&bookingDate,
			&startTime,
			&booking.DurationMinutes,
			&booking.Status,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan booking: %v", ErrScanRow, err)
		}

		// DATE приходит полуночью, берем компоненты даты без перевода между часовыми поясами
		booking.BookingDate = types.DateKeyFromTime(bookingDate)

		booking.StartTime, err = parseTimeColumn(startTime)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - booking id=%d: %v", ErrScanRow, booking.ID, err)
		}
		booking.CreatedAt = createdAt.Time

		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// parseTimeColumn разбирает значение колонки TIME ("HH:MM:SS" или "HH:MM")
func parseTimeColumn(value string) (types.TimeOfDay, error) {
	if len(value) > 5 {
		value = value[:5]
	}
	return types.ParseTimeOfDay(value)
}

func activeStatuses() []string {
	statuses := make([]string, len(domain.ActiveStatuses))
	for i, s := range domain.ActiveStatuses {
		statuses[i] = string(s)
	}
	return statuses
}
