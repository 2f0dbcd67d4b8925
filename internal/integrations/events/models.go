package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/randevu-service/internal/domain"
)

// Типы событий
const (
	TypeAppointmentCreated       = "appointment.created"
	TypeAppointmentStatusChanged = "appointment.status_changed"
)

// Event конверт события о записи
type Event struct {
	ID             uuid.UUID          `json:"eventId"`
	Type           string             `json:"eventType"`
	OccurredAt     time.Time          `json:"occurredAt"`
	Appointment    AppointmentPayload `json:"appointment"`
	PreviousStatus *string            `json:"previousStatus,omitempty"`
}

// AppointmentPayload данные записи в событии
type AppointmentPayload struct {
	ID              uuid.UUID `json:"id"`
	BusinessID      uuid.UUID `json:"businessId"`
	ServiceID       uuid.UUID `json:"serviceId"`
	StaffID         uuid.UUID `json:"staffId"`
	CustomerName    string    `json:"customerName"`
	CustomerEmail   string    `json:"customerEmail"`
	CustomerPhone   string    `json:"customerPhone"`
	Date            string    `json:"date"`
	Time            string    `json:"time"`
	DurationMinutes int       `json:"durationMinutes"`
	Status          string    `json:"status"`
	ETKConsent      bool      `json:"etkConsent"`
}

func newPayload(a *domain.Appointment) AppointmentPayload {
	return AppointmentPayload{
		ID:              a.ID,
		BusinessID:      a.BusinessID,
		ServiceID:       a.ServiceID,
		StaffID:         a.StaffID,
		CustomerName:    a.CustomerName,
		CustomerEmail:   a.CustomerEmail,
		CustomerPhone:   a.CustomerPhone,
		Date:            a.Date.Format(domain.DateFormat),
		Time:            a.Time.String(),
		DurationMinutes: a.DurationMinutes,
		Status:          string(a.Status),
		ETKConsent:      a.ETKConsent,
	}
}
