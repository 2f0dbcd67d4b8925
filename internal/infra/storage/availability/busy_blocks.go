package availability

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/randevu-service/internal/domain"
	"github.com/m04kA/randevu-service/pkg/dbmetrics"
	"github.com/m04kA/randevu-service/pkg/psqlbuilder"
)

const busyBlocksTable = "staff_busy_blocks"

var busyBlockColumns = []string{
	"id",
	"staff_id",
	"block_date",
	"start_time",
	"end_time",
	"reason",
	"created_at",
}

// CreateBusyBlock создает разовую блокировку сотрудника на дату
func (r *Repository) CreateBusyBlock(ctx context.Context, b *domain.BusyBlock) (*domain.BusyBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(busyBlocksTable).
		Columns("staff_id", "block_date", "start_time", "end_time", "reason").
		Values(b.StaffID, b.Date.Format(domain.DateFormat), b.StartTime, b.EndTime, b.Reason).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateBusyBlock - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&b.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: CreateBusyBlock - execute insert: %v", ErrExecQuery, err)
	}
	b.CreatedAt = createdAt.Time

	return b, nil
}

// GetBusyBlockByID получает блокировку по ID
func (r *Repository) GetBusyBlockByID(ctx context.Context, id uuid.UUID) (*domain.BusyBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(busyBlockColumns...).
		From(busyBlocksTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetBusyBlockByID - build select query: %v", ErrBuildQuery, err)
	}

	b, err := scanBusyBlock(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBusyBlockNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetBusyBlockByID - scan busy block: %v", ErrScanRow, err)
	}

	return b, nil
}

// ListBusyBlocksByStaffAndDate получает блокировки сотрудника на календарную дату
func (r *Repository) ListBusyBlocksByStaffAndDate(ctx context.Context, staffID uuid.UUID, date time.Time) ([]domain.BusyBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(busyBlockColumns...).
		From(busyBlocksTable).
		Where(squirrel.Eq{"staff_id": staffID}).
		Where(squirrel.Eq{"block_date": date.Format(domain.DateFormat)}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListBusyBlocksByStaffAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBusyBlocksByStaffAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	blocks := make([]domain.BusyBlock, 0)
	for rows.Next() {
		b, err := scanBusyBlock(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListBusyBlocksByStaffAndDate - scan row: %v", ErrScanRow, err)
		}
		blocks = append(blocks, *b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBusyBlocksByStaffAndDate - rows error: %v", ErrScanRow, err)
	}

	return blocks, nil
}

// DeleteBusyBlock удаляет блокировку
func (r *Repository) DeleteBusyBlock(ctx context.Context, id uuid.UUID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(busyBlocksTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteBusyBlock - build delete query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "DeleteBusyBlock", query, args, ErrBusyBlockNotFound)
}

func scanBusyBlock(row rowScanner) (*domain.BusyBlock, error) {
	var b domain.BusyBlock
	var createdAt sql.NullTime

	err := row.Scan(
		&b.ID,
		&b.StaffID,
		&b.Date,
		&b.StartTime,
		&b.EndTime,
		&b.Reason,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}
	b.CreatedAt = createdAt.Time

	return &b, nil
}
