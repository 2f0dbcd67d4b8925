package domain

import (
	"time"

	"github.com/google/uuid"
)

// Business бизнес (салон, клиника и т.п.)
type Business struct {
	ID        uuid.UUID
	Name      string
	Slug      string
	OwnerID   *uuid.UUID
	Timezone  string
	CreatedAt time.Time
}

// Service услуга бизнеса
type Service struct {
	ID              uuid.UUID
	BusinessID      uuid.UUID
	Name            string
	DurationMinutes int
	PriceCents      int64
	Active          bool
}

// EffectiveDuration возвращает длительность услуги, 60 минут если не задана
func (s *Service) EffectiveDuration() int {
	if s.DurationMinutes == 0 {
		return DefaultServiceDurationMinutes
	}
	return s.DurationMinutes
}

// Staff сотрудник бизнеса
type Staff struct {
	ID         uuid.UUID
	BusinessID uuid.UUID
	Name       string
	Email      *string
}
