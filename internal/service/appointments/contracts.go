package appointments

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/randevu-service/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error)
	ListWithFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.AppointmentStatus) error
	Cancel(ctx context.Context, id uuid.UUID) error
}

// AccessChecker интерфейс проверки прав на бизнес
type AccessChecker interface {
	CheckBusiness(ctx context.Context, identity *domain.Identity, businessID uuid.UUID) error
}

// EventPublisher интерфейс публикации событий о записях
type EventPublisher interface {
	PublishStatusChanged(ctx context.Context, appointment *domain.Appointment, previous domain.AppointmentStatus) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
