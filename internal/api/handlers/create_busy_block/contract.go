package create_busy_block

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/randevu-service/internal/domain"
	"github.com/m04kA/randevu-service/internal/service/availability/models"
)

type AvailabilityService interface {
	CreateBusyBlock(ctx context.Context, identity *domain.Identity, staffID uuid.UUID, req *models.CreateBusyBlockRequest) (*models.BusyBlockResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
