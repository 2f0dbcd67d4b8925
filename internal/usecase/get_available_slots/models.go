package get_available_slots

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/randevu-service/pkg/types"
)

// Причины пустого списка слотов
const (
	ReasonNoWorkingHours = "no_working_hours"
	ReasonNoFreeSlots    = "no_free_slots"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	StaffID   uuid.UUID // ID сотрудника
	ServiceID uuid.UUID // ID услуги
	Date      time.Time // Календарная дата в часовом поясе бизнеса
}

// Response модель ответа со списком слотов
type Response struct {
	Date            time.Time
	StaffID         uuid.UUID
	ServiceID       uuid.UUID
	DurationMinutes int
	Slots           []Slot
	// Reason причина пустого списка, пусто если слоты есть
	Reason string
}

// Slot модель временного слота
type Slot struct {
	StartTime       types.TimeString // Время начала слота (например, "10:00")
	DurationMinutes int              // Длительность услуги в минутах
	Available       bool             // false - время занято другой записью
}
