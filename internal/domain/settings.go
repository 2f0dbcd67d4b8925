package domain

import (
	"time"

	"github.com/google/uuid"
)

// BookingSettings правила записи бизнеса.
// Поддерживается иерархия:
// 1. Для конкретной услуги (business_id, service_id)
// 2. Для всего бизнеса (business_id, NULL)
type BookingSettings struct {
	ID                      uuid.UUID
	BusinessID              uuid.UUID
	ServiceID               *uuid.UUID
	MinBookingNoticeMinutes int
	AdvanceBookingDays      int // 0 = без ограничений
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

// DefaultBookingSettings настройки по умолчанию для бизнеса без собственной конфигурации
func DefaultBookingSettings(businessID uuid.UUID) *BookingSettings {
	return &BookingSettings{
		BusinessID:              businessID,
		MinBookingNoticeMinutes: DefaultMinBookingNoticeMinutes,
		AdvanceBookingDays:      DefaultAdvanceBookingDays,
	}
}

// IsServiceSpecific возвращает true, если настройки относятся к конкретной услуге
func (s *BookingSettings) IsServiceSpecific() bool {
	return s.ServiceID != nil
}

// HasAdvanceBookingLimit возвращает true, если есть ограничение на запись заранее
func (s *BookingSettings) HasAdvanceBookingLimit() bool {
	return s.AdvanceBookingDays > 0
}
