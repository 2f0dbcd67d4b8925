package cancel_appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/randevu-service/internal/domain"
	"github.com/m04kA/randevu-service/internal/service/appointments/models"
)

type AppointmentService interface {
	Cancel(ctx context.Context, identity *domain.Identity, id uuid.UUID) (*models.AppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
