package get_available_slots

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/randevu-service/internal/domain"
)

// AvailabilityRepository интерфейс репозитория окон доступности и блокировок
type AvailabilityRepository interface {
	// ListByStaffAndDay получает все окна сотрудника на день недели (0 = воскресенье)
	ListByStaffAndDay(ctx context.Context, staffID uuid.UUID, dayOfWeek int) ([]domain.AvailabilityWindow, error)
	// ListBusyBlocksByStaffAndDate получает разовые блокировки сотрудника на дату
	ListBusyBlocksByStaffAndDate(ctx context.Context, staffID uuid.UUID, date time.Time) ([]domain.BusyBlock, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	ListActiveByStaffAndDate(ctx context.Context, staffID uuid.UUID, date time.Time) ([]*domain.Appointment, error)
}

// SettingsRepository интерфейс репозитория правил записи
type SettingsRepository interface {
	// GetWithHierarchy получает настройки с учетом иерархии приоритетов
	GetWithHierarchy(ctx context.Context, businessID uuid.UUID, serviceID *uuid.UUID) (*domain.BookingSettings, error)
}

// CatalogRepository интерфейс справочников
type CatalogRepository interface {
	GetStaff(ctx context.Context, id uuid.UUID) (*domain.Staff, error)
	GetService(ctx context.Context, id uuid.UUID) (*domain.Service, error)
	StaffProvidesService(ctx context.Context, staffID, serviceID uuid.UUID) (bool, error)
}

// MetricsCollector интерфейс для метрик генерации слотов
type MetricsCollector interface {
	ObserveSlotsGenerated(count int)
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
