package exceptions

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

// Repository репозиторий исключений календаря мастеров:
// заблокированные даты (отпуск, праздник) и явно разрешенные даты
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория исключений
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByProfessional получает исключения мастера. Заблокированные даты отбираются
// начиная с blockedFrom (включительно), нулевая blockedFrom - все даты.
// Разрешенные даты возвращаются всегда целиком: от пустоты их набора зависят правила по дням недели.
func (r *Repository) GetByProfessional(ctx context.Context, professionalID int64, blockedFrom types.DateKey) ([]*domain.DateException, error) {
	selectBuilder := psqlbuilder.Select(
		"professional_id",
		"exception_date",
		"kind",
		"note",
	).
		From("calendar_exceptions").
		Where(squirrel.Eq{"professional_id": professionalID}).
		OrderBy("exception_date ASC")

	if !blockedFrom.IsZero() {
		selectBuilder = selectBuilder.Where(squirrel.Or{
			squirrel.Eq{"kind": string(domain.ExceptionAllowed)},
			squirrel.GtOrEq{"exception_date": blockedFrom.String()},
		})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByProfessional - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByProfessional - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.DateException, 0)
	for rows.Next() {
		var (
			exception     domain.DateException
			exceptionDate time.Time
			note          sql.NullString
		)
		if err := rows.Scan(&exception.ProfessionalID, &exceptionDate, &exception.Kind, &note); err != nil {
			return nil, fmt.Errorf("%w: GetByProfessional - scan exception: %v", ErrScanRow, err)
		}

		switch exception.Kind {
		case domain.ExceptionBlocked, domain.ExceptionAllowed:
		default:
			return nil, fmt.Errorf("%w: GetByProfessional - unknown kind %q", ErrScanRow, exception.Kind)
		}

		exception.Date = types.DateKeyFromTime(exceptionDate)
		if note.Valid {
			exception.Note = &note.String
		}
		result = append(result, &exception)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByProfessional - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}
