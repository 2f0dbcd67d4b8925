package catalog

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

// Repository справочные данные: бизнесы, услуги, сотрудники и профили пользователей.
// Сами справочники ведутся вне сервиса, здесь только чтение и профиль клиента
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория справочников
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetStaff получает сотрудника по ID
func (r *Repository) GetStaff(ctx context.Context, id uuid.UUID) (*domain.Staff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "business_id", "name", "email").
		From("staff").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetStaff - build select query: %v", ErrBuildQuery, err)
	}

	var staff domain.Staff
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&staff.ID,
		&staff.BusinessID,
		&staff.Name,
		&staff.Email,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStaffNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetStaff - scan staff: %v", ErrScanRow, err)
	}

	return &staff, nil
}

// ListStaffByIDs получает сотрудников по списку ID. Отсутствующие ID пропускаются
func (r *Repository) ListStaffByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Staff, error) {
	if len(ids) == 0 {
		return []*domain.Staff{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "business_id", "name", "email").
		From("staff").
		Where(squirrel.Eq{"id": ids}).
		OrderBy("name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListStaffByIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListStaffByIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.Staff, 0, len(ids))
	for rows.Next() {
		var staff domain.Staff
		if err := rows.Scan(&staff.ID, &staff.BusinessID, &staff.Name, &staff.Email); err != nil {
			return nil, fmt.Errorf("%w: ListStaffByIDs - scan row: %v", ErrScanRow, err)
		}
		result = append(result, &staff)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListStaffByIDs - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// GetService получает услугу по ID
func (r *Repository) GetService(ctx context.Context, id uuid.UUID) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "business_id", "name", "COALESCE(duration_minutes, 0)", "COALESCE(price_cents, 0)", "is_active").
		From("services").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetService - build select query: %v", ErrBuildQuery, err)
	}

	var service domain.Service
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&service.ID,
		&service.BusinessID,
		&service.Name,
		&service.DurationMinutes,
		&service.PriceCents,
		&service.Active,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetService - scan service: %v", ErrScanRow, err)
	}

	return &service, nil
}

// StaffProvidesService проверяет связь сотрудника с услугой (таблица staff_services)
func (r *Repository) StaffProvidesService(ctx context.Context, staffID, serviceID uuid.UUID) (bool, error) {
	return r.exists(ctx, "StaffProvidesService", psqlbuilder.Select("COUNT(*)").
		From("staff_services").
		Where(squirrel.Eq{"staff_id": staffID}).
		Where(squirrel.Eq{"service_id": serviceID}))
}

// GetBusiness получает бизнес по ID
func (r *Repository) GetBusiness(ctx context.Context, id uuid.UUID) (*domain.Business, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "COALESCE(slug, '')", "owner_id", "COALESCE(timezone, '')", "created_at").
		From("businesses").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetBusiness - build select query: %v", ErrBuildQuery, err)
	}

	var business domain.Business
	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&business.ID,
		&business.Name,
		&business.Slug,
		&business.OwnerID,
		&business.Timezone,
		&createdAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBusinessNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetBusiness - scan business: %v", ErrScanRow, err)
	}
	business.CreatedAt = createdAt.Time

	return &business, nil
}

// GetProfile получает профиль пользователя по ID
func (r *Repository) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "email", "name", "phone", "role", "business_id").
		From("profiles").
		Where(squirrel.Eq{"id": userID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetProfile - build select query: %v", ErrBuildQuery, err)
	}

	var profile domain.Profile
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&profile.ID,
		&profile.Email,
		&profile.Name,
		&profile.Phone,
		&profile.Role,
		&profile.BusinessID,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetProfile - scan profile: %v", ErrScanRow, err)
	}

	return &profile, nil
}

// IsBusinessAdmin проверяет, что пользователь управляет бизнесом:
// есть запись в business_admins или он владелец, привязанный к бизнесу в профиле
func (r *Repository) IsBusinessAdmin(ctx context.Context, userID, businessID uuid.UUID) (bool, error) {
	linked, err := r.exists(ctx, "IsBusinessAdmin", psqlbuilder.Select("COUNT(*)").
		From("business_admins").
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.Eq{"business_id": businessID}))
	if err != nil || linked {
		return linked, err
	}

	return r.exists(ctx, "IsBusinessAdmin", psqlbuilder.Select("COUNT(*)").
		From("profiles").
		Where(squirrel.Eq{"id": userID}).
		Where(squirrel.Eq{"business_id": businessID}).
		Where(squirrel.Eq{"role": string(domain.RoleBusinessOwner)}))
}

func (r *Repository) exists(ctx context.Context, op string, countQuery squirrel.SelectBuilder) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := countQuery.ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("%w: %s - scan count: %v", ErrScanRow, op, err)
	}

	return count > 0, nil
}

// UpsertCustomerProfile сохраняет контакты и согласия клиента по email.
// Роль существующего профиля не меняется
func (r *Repository) UpsertCustomerProfile(ctx context.Context, p *domain.CustomerProfile) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("profiles").
		Columns("email", "name", "phone", "role", "kvkk_consent", "etk_consent", "consent_date").
		Values(p.Email, p.Name, p.Phone, string(domain.RoleCustomer), p.KVKKConsent, p.ETKConsent, p.ConsentAt).
		Suffix("ON CONFLICT (email) DO UPDATE SET " +
			"name = EXCLUDED.name, phone = EXCLUDED.phone, " +
			"kvkk_consent = EXCLUDED.kvkk_consent, etk_consent = EXCLUDED.etk_consent, " +
			"consent_date = EXCLUDED.consent_date").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpsertCustomerProfile - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: UpsertCustomerProfile - execute upsert: %v", ErrExecQuery, err)
	}

	return nil
}
