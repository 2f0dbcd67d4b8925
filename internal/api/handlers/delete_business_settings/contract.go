package delete_business_settings

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/randevu-service/internal/domain"
)

type SettingsService interface {
	Delete(ctx context.Context, identity *domain.Identity, businessID uuid.UUID, serviceID *uuid.UUID) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
