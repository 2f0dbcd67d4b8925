package domain

// Значения по умолчанию
const (
	DefaultServiceDurationMinutes  = 60
	DefaultMinBookingNoticeMinutes = 60 // 1 час
	DefaultAdvanceBookingDays      = 0  // 0 = без ограничений
)

// Ограничения бизнес-валидации
const (
	MinBookingNoticeMinutes   = 0
	MaxBookingNoticeMinutes   = 10080 // 1 неделя
	MinAdvanceBookingDays     = 0
	MaxAdvanceBookingDays     = 365
	MaxServiceDurationMinutes = 1440
	MaxNotesLength            = 500
	MaxCustomerNameLength     = 200
)

// Форматы времени
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses статусы записей, занимающих время сотрудника
var ActiveStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
}
