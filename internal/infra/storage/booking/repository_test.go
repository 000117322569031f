package booking

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingCalendar/internal/domain"
	"github.com/m04kA/SMC-BookingCalendar/pkg/types"
)

var testDate = types.MustDateKey(2026, time.October, 19)

func bookingRows() *sqlmock.Rows {
	return sqlmock.NewRows(bookingColumns)
}

func TestRepository_GetActiveByDate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	created := time.Date(2026, time.October, 1, 12, 0, 0, 0, time.UTC)
	rows := bookingRows().
		AddRow(int64(1), int64(7), int64(100), int64(5), time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC), "09:00:00", 60, "confirmed", created).
		AddRow(int64(2), int64(7), int64(101), int64(5), time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC), "11:30:00", 90, "pending", nil)

	mock.ExpectQuery(regexp.QuoteMeta(
		"FROM bookings WHERE professional_id = $1 AND booking_date = $2 AND status IN ($3,$4,$5,$6) ORDER BY start_time ASC",
	)).
		WithArgs(int64(7), "2026-10-19", "pending", "confirmed", "in_progress", "completed").
		WillReturnRows(rows)

	bookings, err := NewRepository(db).GetActiveByDate(context.Background(), 7, testDate)
	require.NoError(t, err)
	require.Len(t, bookings, 2)

	assert.Equal(t, testDate, bookings[0].BookingDate)
	assert.Equal(t, "09:00", bookings[0].StartTime.String())
	assert.Equal(t, domain.StatusConfirmed, bookings[0].Status)
	assert.Equal(t, created, bookings[0].CreatedAt)

	assert.Equal(t, "11:30", bookings[1].StartTime.String())
	assert.Equal(t, "13:00", bookings[1].EndTime().String())
	assert.True(t, bookings[1].CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetActiveByDate_Errors(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectQuery("FROM bookings").WillReturnError(errors.New("connection refused"))
	_, err = repo.GetActiveByDate(context.Background(), 7, testDate)
	assert.ErrorIs(t, err, ErrExecQuery)

	mock.ExpectQuery("FROM bookings").WillReturnRows(
		bookingRows().AddRow(int64(1), int64(7), int64(100), int64(5), time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC), "9am", 60, "confirmed", nil),
	)
	_, err = repo.GetActiveByDate(context.Background(), 7, testDate)
	assert.ErrorIs(t, err, ErrScanRow)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CountActiveByPeriod(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	from := types.MustDateKey(2026, time.September, 27)
	to := types.MustDateKey(2026, time.November, 7)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT booking_date, COUNT(*) FROM bookings WHERE professional_id = $1 AND booking_date >= $2 AND booking_date <= $3 AND status IN ($4,$5,$6,$7) GROUP BY booking_date",
	)).
		WithArgs(int64(7), "2026-09-27", "2026-11-07", "pending", "confirmed", "in_progress", "completed").
		WillReturnRows(sqlmock.NewRows([]string{"booking_date", "count"}).
			AddRow(time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC), 3).
			AddRow(time.Date(2026, time.November, 2, 0, 0, 0, 0, time.UTC), 1))

	counts, err := NewRepository(db).CountActiveByPeriod(context.Background(), 7, from, to)
	require.NoError(t, err)

	assert.Equal(t, map[types.DateKey]int{
		testDate: 3,
		types.MustDateKey(2026, time.November, 2): 1,
	}, counts)
	assert.NoError(t, mock.ExpectationsWereMet())
}
