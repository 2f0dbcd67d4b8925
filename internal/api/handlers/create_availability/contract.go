package create_availability

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/randevu-service/internal/domain"
	"github.com/m04kA/randevu-service/internal/service/availability/models"
)

type AvailabilityService interface {
	Create(ctx context.Context, identity *domain.Identity, staffID uuid.UUID, req *models.CreateWindowRequest) (*models.WindowResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
