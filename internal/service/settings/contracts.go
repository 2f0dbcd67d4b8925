package settings

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/randevu-service/internal/domain"
)

// SettingsRepository интерфейс репозитория правил записи
type SettingsRepository interface {
	Create(ctx context.Context, settings *domain.BookingSettings) (*domain.BookingSettings, error)
	GetByBusinessAndService(ctx context.Context, businessID uuid.UUID, serviceID *uuid.UUID) (*domain.BookingSettings, error)
	GetWithHierarchy(ctx context.Context, businessID uuid.UUID, serviceID *uuid.UUID) (*domain.BookingSettings, error)
	ListByBusiness(ctx context.Context, businessID uuid.UUID) ([]*domain.BookingSettings, error)
	Update(ctx context.Context, id uuid.UUID, settings *domain.BookingSettings) (*domain.BookingSettings, error)
	Delete(ctx context.Context, businessID uuid.UUID, serviceID *uuid.UUID) error
}

// CatalogRepository интерфейс справочника бизнесов и услуг
type CatalogRepository interface {
	GetBusiness(ctx context.Context, id uuid.UUID) (*domain.Business, error)
	GetService(ctx context.Context, id uuid.UUID) (*domain.Service, error)
}

// AccessChecker интерфейс проверки прав на бизнес
type AccessChecker interface {
	CheckBusiness(ctx context.Context, identity *domain.Identity, businessID uuid.UUID) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
