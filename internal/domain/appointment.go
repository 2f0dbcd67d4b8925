package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/randevu-service/pkg/types"
)

// AppointmentStatus статус записи
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// Appointment запись клиента к сотруднику на услугу
type Appointment struct {
	ID              uuid.UUID
	BusinessID      uuid.UUID
	ServiceID       uuid.UUID
	StaffID         uuid.UUID
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	Date            time.Time
	Time            types.TimeString
	DurationMinutes int
	Status          AppointmentStatus
	Notes           *string
	KVKKConsent     bool
	ETKConsent      bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsActive возвращает true, если запись занимает время сотрудника
func (a *Appointment) IsActive() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// CanBeCancelled возвращает true, если запись можно отменить
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// IsValidStatus проверяет, что статус известен
func IsValidStatus(status AppointmentStatus) bool {
	switch status {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// AppointmentsFilter фильтр для выборки записей
type AppointmentsFilter struct {
	BusinessID       *uuid.UUID
	StaffID          *uuid.UUID
	CustomerEmail    *string
	StartDate        *time.Time
	EndDate          *time.Time
	Status           *AppointmentStatus
	IncludeCancelled bool
}
