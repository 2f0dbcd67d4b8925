package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/randevu-service/internal/domain"
)

// Уровни, на которых найдены настройки
const (
	LevelService  = "service"
	LevelBusiness = "business"
	LevelDefault  = "default"
)

// Request модели

// UpsertSettingsRequest запрос на создание или обновление правил записи.
// ServiceID = nil задаёт правила для всего бизнеса
type UpsertSettingsRequest struct {
	BusinessID              uuid.UUID  `json:"businessId"`
	ServiceID               *uuid.UUID `json:"serviceId,omitempty"`
	MinBookingNoticeMinutes int        `json:"minBookingNoticeMinutes"`
	AdvanceBookingDays      int        `json:"advanceBookingDays"` // 0 = без ограничений
}

// ToDomainSettings конвертирует request в domain модель
func (r *UpsertSettingsRequest) ToDomainSettings() *domain.BookingSettings {
	return &domain.BookingSettings{
		BusinessID:              r.BusinessID,
		ServiceID:               r.ServiceID,
		MinBookingNoticeMinutes: r.MinBookingNoticeMinutes,
		AdvanceBookingDays:      r.AdvanceBookingDays,
	}
}

// Response модели

// SettingsResponse ответ с правилами записи
type SettingsResponse struct {
	ID                      *uuid.UUID `json:"id,omitempty"` // nil для значений по умолчанию
	BusinessID              uuid.UUID  `json:"businessId"`
	ServiceID               *uuid.UUID `json:"serviceId,omitempty"`
	MinBookingNoticeMinutes int        `json:"minBookingNoticeMinutes"`
	AdvanceBookingDays      int        `json:"advanceBookingDays"`
	Level                   string     `json:"level"`
	CreatedAt               *time.Time `json:"createdAt,omitempty"`
	UpdatedAt               *time.Time `json:"updatedAt,omitempty"`
}

// SettingsListResponse ответ со списком правил бизнеса
type SettingsListResponse struct {
	Settings []SettingsResponse `json:"settings"`
}

// Методы конвертации

// FromDomainSettings конвертирует domain модель в DTO
func FromDomainSettings(s *domain.BookingSettings) *SettingsResponse {
	if s == nil {
		return nil
	}

	resp := &SettingsResponse{
		BusinessID:              s.BusinessID,
		ServiceID:               s.ServiceID,
		MinBookingNoticeMinutes: s.MinBookingNoticeMinutes,
		AdvanceBookingDays:      s.AdvanceBookingDays,
		Level:                   LevelBusiness,
	}

	if s.IsServiceSpecific() {
		resp.Level = LevelService
	}

	if s.ID == uuid.Nil {
		resp.Level = LevelDefault
		return resp
	}

	id, createdAt, updatedAt := s.ID, s.CreatedAt, s.UpdatedAt
	resp.ID = &id
	resp.CreatedAt = &createdAt
	resp.UpdatedAt = &updatedAt

	return resp
}

// FromDomainSettingsList конвертирует список domain моделей в DTO
func FromDomainSettingsList(list []*domain.BookingSettings) *SettingsListResponse {
	resp := &SettingsListResponse{
		Settings: make([]SettingsResponse, 0, len(list)),
	}

	for _, s := range list {
		resp.Settings = append(resp.Settings, *FromDomainSettings(s))
	}

	return resp
}
