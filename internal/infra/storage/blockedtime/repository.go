package blockedtime

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SLN-AvailabilityService/internal/domain"
	"github.com/m04kA/SLN-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SLN-AvailabilityService/pkg/psqlbuilder"
)

var blockedTimeColumns = []string{
	"id",
	"business_id",
	"staff_id",
	"start_date",
	"end_date",
	"start_minute",
	"end_minute",
	"reason",
	"created_at",
}

// Repository репозиторий для работы с блокировками расписания
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория блокировок
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую блокировку расписания
func (r *Repository) Create(ctx context.Context, blocked *domain.BlockedTimeRange) (*domain.BlockedTimeRange, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("blocked_time_ranges").
		Columns(
			"business_id",
			"staff_id",
			"start_date",
			"end_date",
			"start_minute",
			"end_minute",
			"reason",
		).
		Values(
			blocked.BusinessID,
			blocked.StaffID,
			blocked.StartDate,
			blocked.EndDate,
			blocked.StartMinute,
			blocked.EndMinute,
			blocked.Reason,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&blocked.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	blocked.CreatedAt = createdAt.Time

	return blocked, nil
}

// GetForDate получает блокировки бизнеса, покрывающие календарную дату
// Именно эту выборку читает генератор слотов и проверка слота при создании записи
func (r *Repository) GetForDate(ctx context.Context, businessID int64, date time.Time) ([]domain.BlockedTimeRange, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(blockedTimeColumns...).
		From("blocked_time_ranges").
		Where(squirrel.Eq{"business_id": businessID}).
		Where(squirrel.LtOrEq{"start_date": date}).
		Where(squirrel.GtOrEq{"end_date": date}).
		OrderBy("start_minute ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetForDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetForDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBlockedTimes(rows)
}

// GetByBusinessID получает все блокировки бизнеса
// Опционально фильтрует по сотруднику (включая блокировки "на всю команду")
func (r *Repository) GetByBusinessID(ctx context.Context, businessID int64, staffID *int64) ([]domain.BlockedTimeRange, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(blockedTimeColumns...).
		From("blocked_time_ranges").
		Where(squirrel.Eq{"business_id": businessID}).
		OrderBy("start_date ASC, start_minute ASC")

	// Блокировки на всю команду (staff_id IS NULL) действуют на каждого
	if staffID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Or{
			squirrel.Eq{"staff_id": *staffID},
			squirrel.Eq{"staff_id": nil},
		})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBusinessID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBusinessID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBlockedTimes(rows)
}

// Delete удаляет блокировку
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("blocked_time_ranges").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBlockedTimeNotFound
	}

	return nil
}

// scanBlockedTimes сканирует результаты запроса в слайс блокировок
func (r *Repository) scanBlockedTimes(rows *sql.Rows) ([]domain.BlockedTimeRange, error) {
	blocked := make([]domain.BlockedTimeRange, 0)

	for rows.Next() {
		var b domain.BlockedTimeRange
		var createdAt sql.NullTime

		err := rows.Scan(
			&b.ID,
			&b.BusinessID,
			&b.StaffID,
			&b.StartDate,
			&b.EndDate,
			&b.StartMinute,
			&b.EndMinute,
			&b.Reason,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBlockedTimes - scan row: %v", ErrScanRow, err)
		}

		b.CreatedAt = createdAt.Time
		blocked = append(blocked, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBlockedTimes - rows error: %v", ErrScanRow, err)
	}

	return blocked, nil
}
