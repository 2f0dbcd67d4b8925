package create_appointment

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/randevu-service/pkg/types"
)

// Request модель запроса на онлайн-запись
type Request struct {
	StaffID       uuid.UUID
	ServiceID     uuid.UUID
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Date          time.Time        // Календарная дата в часовом поясе бизнеса
	Time          types.TimeString // Время начала (например, "10:00")
	Notes         *string          // Комментарий клиента (опционально)
	KVKKConsent   bool
	ETKConsent    bool
}

// Response модель ответа с созданной записью
type Response struct {
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
	Status          string
	Notes           *string
	CreatedAt       time.Time
}
