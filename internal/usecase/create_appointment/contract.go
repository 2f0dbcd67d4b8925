package create_appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/randevu-service/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error)
	// ListActiveByStaffAndDate внутри транзакции блокирует строки (FOR UPDATE)
	ListActiveByStaffAndDate(ctx context.Context, staffID uuid.UUID, date time.Time) ([]*domain.Appointment, error)
}

// AvailabilityRepository интерфейс репозитория окон доступности и блокировок
type AvailabilityRepository interface {
	ListByStaffAndDay(ctx context.Context, staffID uuid.UUID, dayOfWeek int) ([]domain.AvailabilityWindow, error)
	ListBusyBlocksByStaffAndDate(ctx context.Context, staffID uuid.UUID, date time.Time) ([]domain.BusyBlock, error)
}

// SettingsRepository интерфейс репозитория правил записи
type SettingsRepository interface {
	GetWithHierarchy(ctx context.Context, businessID uuid.UUID, serviceID *uuid.UUID) (*domain.BookingSettings, error)
}

// CatalogRepository интерфейс справочников
type CatalogRepository interface {
	GetStaff(ctx context.Context, id uuid.UUID) (*domain.Staff, error)
	GetService(ctx context.Context, id uuid.UUID) (*domain.Service, error)
	StaffProvidesService(ctx context.Context, staffID, serviceID uuid.UUID) (bool, error)
	UpsertCustomerProfile(ctx context.Context, profile *domain.CustomerProfile) error
}

// EventPublisher интерфейс публикации событий о записях
type EventPublisher interface {
	PublishAppointmentCreated(ctx context.Context, appointment *domain.Appointment) error
}

// MetricsCollector интерфейс для метрик записи
type MetricsCollector interface {
	IncAppointments(result string)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
