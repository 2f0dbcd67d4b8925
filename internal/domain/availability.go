package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/randevu-service/pkg/types"
)

// AvailabilityWindow еженедельный интервал работы сотрудника.
// Строки с Active=false - это "занятые" интервалы старого формата: они не участвуют
// в генерации слотов, но и не вычитаются из других окон
type AvailabilityWindow struct {
	ID        uuid.UUID
	StaffID   uuid.UUID
	DayOfWeek int // 0 = воскресенье ... 6 = суббота (как time.Weekday)
	StartTime types.TimeString
	EndTime   types.TimeString
	Active    bool
	CreatedAt time.Time
}

// BusyBlock разовая блокировка сотрудника на конкретную календарную дату
type BusyBlock struct {
	ID        uuid.UUID
	StaffID   uuid.UUID
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
	Reason    *string
	CreatedAt time.Time
}

// TimeSlot слот для записи
type TimeSlot struct {
	Time      types.TimeString
	Available bool
}

// IsValidDayOfWeek проверяет, что день недели в диапазоне 0..6
func IsValidDayOfWeek(day int) bool {
	return day >= int(time.Sunday) && day <= int(time.Saturday)
}

// DayOfWeek возвращает день недели календарной даты в формате хранения (воскресенье = 0)
func DayOfWeek(date time.Time) int {
	return int(date.Weekday())
}
