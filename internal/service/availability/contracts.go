package availability

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/randevu-service/internal/domain"
)

// AvailabilityRepository интерфейс репозитория окон доступности и блокировок
type AvailabilityRepository interface {
	ListByStaff(ctx context.Context, staffID uuid.UUID) ([]domain.AvailabilityWindow, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.AvailabilityWindow, error)
	Create(ctx context.Context, window *domain.AvailabilityWindow) (*domain.AvailabilityWindow, error)
	CreateBatch(ctx context.Context, windows []domain.AvailabilityWindow) (int64, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	Delete(ctx context.Context, id uuid.UUID) error

	CreateBusyBlock(ctx context.Context, block *domain.BusyBlock) (*domain.BusyBlock, error)
	GetBusyBlockByID(ctx context.Context, id uuid.UUID) (*domain.BusyBlock, error)
	DeleteBusyBlock(ctx context.Context, id uuid.UUID) error
}

// CatalogRepository интерфейс справочника сотрудников
type CatalogRepository interface {
	GetStaff(ctx context.Context, id uuid.UUID) (*domain.Staff, error)
	ListStaffByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Staff, error)
}

// AccessChecker интерфейс проверки прав на бизнес
type AccessChecker interface {
	CheckBusiness(ctx context.Context, identity *domain.Identity, businessID uuid.UUID) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальный провайдер времени
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
