package availability

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/randevu-service/internal/domain"
	"github.com/m04kA/randevu-service/pkg/dbmetrics"
	"github.com/m04kA/randevu-service/pkg/psqlbuilder"
)

const windowsTable = "staff_availability"

var windowColumns = []string{
	"id",
	"staff_id",
	"day_of_week",
	"start_time",
	"end_time",
	"is_active",
	"created_at",
}

// Repository репозиторий окон доступности сотрудников и разовых блокировок
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория доступности
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListByStaffAndDay получает все окна сотрудника на день недели, включая неактивные.
// Порядок строк не гарантирует ничего для расчёта слотов
func (r *Repository) ListByStaffAndDay(ctx context.Context, staffID uuid.UUID, dayOfWeek int) ([]domain.AvailabilityWindow, error) {
	query, args, err := psqlbuilder.Select(windowColumns...).
		From(windowsTable).
		Where(squirrel.Eq{"staff_id": staffID, "day_of_week": dayOfWeek}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByStaffAndDay - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryWindows(ctx, "ListByStaffAndDay", query, args)
}

// ListByStaff получает все окна сотрудника, упорядоченные по дню недели и времени начала
func (r *Repository) ListByStaff(ctx context.Context, staffID uuid.UUID) ([]domain.AvailabilityWindow, error) {
	query, args, err := psqlbuilder.Select(windowColumns...).
		From(windowsTable).
		Where(squirrel.Eq{"staff_id": staffID}).
		OrderBy("day_of_week ASC", "start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByStaff - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryWindows(ctx, "ListByStaff", query, args)
}

// GetByID получает окно по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.AvailabilityWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(windowColumns...).
		From(windowsTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	w, err := scanWindow(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrWindowNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan window: %v", ErrScanRow, err)
	}

	return w, nil
}

// Create создает окно доступности
func (r *Repository) Create(ctx context.Context, w *domain.AvailabilityWindow) (*domain.AvailabilityWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(windowsTable).
		Columns("staff_id", "day_of_week", "start_time", "end_time", "is_active").
		Values(w.StaffID, w.DayOfWeek, w.StartTime, w.EndTime, w.Active).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&w.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	w.CreatedAt = createdAt.Time

	return w, nil
}

// CreateBatch вставляет несколько окон одним запросом, возвращает число вставленных строк
func (r *Repository) CreateBatch(ctx context.Context, windows []domain.AvailabilityWindow) (int64, error) {
	if len(windows) == 0 {
		return 0, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insert := psqlbuilder.Insert(windowsTable).
		Columns("staff_id", "day_of_week", "start_time", "end_time", "is_active")
	for _, w := range windows {
		insert = insert.Values(w.StaffID, w.DayOfWeek, w.StartTime, w.EndTime, w.Active)
	}

	query, args, err := insert.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CreateBatch - build insert query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: CreateBatch - execute insert: %v", ErrExecQuery, err)
	}

	inserted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: CreateBatch - get rows affected: %v", ErrExecQuery, err)
	}

	return inserted, nil
}

// SetActive меняет флаг активности окна
func (r *Repository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(windowsTable).
		Set("is_active", active).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetActive - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "SetActive", query, args, ErrWindowNotFound)
}

// Delete удаляет окно
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(windowsTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "Delete", query, args, ErrWindowNotFound)
}

func (r *Repository) queryWindows(ctx context.Context, op, query string, args []interface{}) ([]domain.AvailabilityWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	windows := make([]domain.AvailabilityWindow, 0)
	for rows.Next() {
		w, err := scanWindow(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
		windows = append(windows, *w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return windows, nil
}

func (r *Repository) execAffectingOne(ctx context.Context, executor DBExecutor, op, query string, args []interface{}, notFound error) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return notFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanWindow(row rowScanner) (*domain.AvailabilityWindow, error) {
	var w domain.AvailabilityWindow
	var createdAt sql.NullTime

	err := row.Scan(
		&w.ID,
		&w.StaffID,
		&w.DayOfWeek,
		&w.StartTime,
		&w.EndTime,
		&w.Active,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}
	w.CreatedAt = createdAt.Time

	return &w, nil
}
