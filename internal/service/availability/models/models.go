package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/randevu-service/internal/domain"
	"github.com/m04kA/randevu-service/pkg/types"
)

// Request модели

// CreateWindowRequest запрос на создание окна доступности
type CreateWindowRequest struct {
	DayOfWeek int              `json:"dayOfWeek"` // 0 = воскресенье
	StartTime types.TimeString `json:"startTime"`
	EndTime   types.TimeString `json:"endTime"`
}

// CopyRequest запрос на копирование окон сотрудника другим сотрудникам
type CopyRequest struct {
	TargetStaffIDs []uuid.UUID `json:"targetStaffIds"`
}

// CreateBusyBlockRequest запрос на блокировку времени сотрудника на дату
type CreateBusyBlockRequest struct {
	Date            string           `json:"date"` // "2024-01-15"
	StartTime       types.TimeString `json:"startTime"`
	DurationMinutes int              `json:"durationMinutes"`
	Reason          *string          `json:"reason,omitempty"`
}

// Response модели

// WindowResponse ответ с окном доступности
type WindowResponse struct {
	ID        uuid.UUID `json:"id"`
	StaffID   uuid.UUID `json:"staffId"`
	DayOfWeek int       `json:"dayOfWeek"`
	StartTime string    `json:"startTime"`
	EndTime   string    `json:"endTime"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

// WindowListResponse ответ со списком окон
type WindowListResponse struct {
	Windows []WindowResponse `json:"windows"`
}

// CopyResponse результат копирования
type CopyResponse struct {
	Copied  int64 `json:"copied"`
	Targets int   `json:"targets"`
}

// BusyBlockResponse ответ с блокировкой
type BusyBlockResponse struct {
	ID        uuid.UUID `json:"id"`
	StaffID   uuid.UUID `json:"staffId"`
	Date      string    `json:"date"`
	StartTime string    `json:"startTime"`
	EndTime   string    `json:"endTime"`
	Reason    *string   `json:"reason,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Методы конвертации

// FromDomainWindow конвертирует domain модель в DTO
func FromDomainWindow(w *domain.AvailabilityWindow) *WindowResponse {
	if w == nil {
		return nil
	}

	return &WindowResponse{
		ID:        w.ID,
		StaffID:   w.StaffID,
		DayOfWeek: w.DayOfWeek,
		StartTime: w.StartTime.String(),
		EndTime:   w.EndTime.String(),
		IsActive:  w.Active,
		CreatedAt: w.CreatedAt,
	}
}

// FromDomainWindowList конвертирует список domain моделей в DTO
func FromDomainWindowList(windows []domain.AvailabilityWindow) *WindowListResponse {
	resp := &WindowListResponse{
		Windows: make([]WindowResponse, 0, len(windows)),
	}

	for i := range windows {
		resp.Windows = append(resp.Windows, *FromDomainWindow(&windows[i]))
	}

	return resp
}

// FromDomainBusyBlock конвертирует domain модель в DTO
func FromDomainBusyBlock(b *domain.BusyBlock) *BusyBlockResponse {
	if b == nil {
		return nil
	}

	return &BusyBlockResponse{
		ID:        b.ID,
		StaffID:   b.StaffID,
		Date:      b.Date.Format(domain.DateFormat),
		StartTime: b.StartTime.String(),
		EndTime:   b.EndTime.String(),
		Reason:    b.Reason,
		CreatedAt: b.CreatedAt,
	}
}
