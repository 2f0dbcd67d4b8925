package delete_busy_block

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/randevu-service/internal/domain"
)

type AvailabilityService interface {
	DeleteBusyBlock(ctx context.Context, identity *domain.Identity, id uuid.UUID) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
