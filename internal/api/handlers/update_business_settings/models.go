package update_business_settings

import (
	"github.com/google/uuid"

	"github.com/m04kA/randevu-service/internal/service/settings/models"
)

// UpdateBusinessSettingsRequest HTTP request model
type UpdateBusinessSettingsRequest struct {
	ServiceID               *uuid.UUID `json:"serviceId,omitempty"` // nil = правила бизнеса
	MinBookingNoticeMinutes int        `json:"minBookingNoticeMinutes"`
	AdvanceBookingDays      int        `json:"advanceBookingDays"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateBusinessSettingsRequest) ToServiceRequest(businessID uuid.UUID) *models.UpsertSettingsRequest {
	return &models.UpsertSettingsRequest{
		BusinessID:              businessID,
		ServiceID:               r.ServiceID,
		MinBookingNoticeMinutes: r.MinBookingNoticeMinutes,
		AdvanceBookingDays:      r.AdvanceBookingDays,
	}
}
