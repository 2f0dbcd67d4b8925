package get_business_settings

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/randevu-service/internal/service/settings/models"
)

type SettingsService interface {
	Get(ctx context.Context, businessID uuid.UUID, serviceID *uuid.UUID) (*models.SettingsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
