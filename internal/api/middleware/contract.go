package middleware

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/randevu-service/internal/domain"
	"github.com/m04kA/randevu-service/internal/integrations/identity"
)

// TokenVerifier проверяет bearer токен и возвращает его владельца
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*identity.User, error)
}

// ProfileRepository источник роли пользователя
type ProfileRepository interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*domain.Profile, error)
}

// HTTPMetrics коллектор метрик HTTP запросов
type HTTPMetrics interface {
	ObserveHTTPRequest(method, path, status string, duration time.Duration)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
