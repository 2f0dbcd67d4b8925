package create_appointment

import "errors"

var (
	// ErrStaffNotFound возвращается, когда сотрудник не найден
	ErrStaffNotFound = errors.New("create_appointment: staff not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена или отключена
	ErrServiceNotFound = errors.New("create_appointment: service not found")

	// ErrServiceNotProvided возвращается, когда сотрудник не оказывает услугу
	ErrServiceNotProvided = errors.New("create_appointment: service is not provided by this staff member")

	// ErrConsentRequired возвращается без согласия на обработку персональных данных (KVKK)
	ErrConsentRequired = errors.New("create_appointment: KVKK consent is required")

	// ErrPastDate возвращается для дат раньше сегодняшнего дня
	ErrPastDate = errors.New("create_appointment: date is in the past")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("create_appointment: date is too far in the future")

	// ErrTooLateToBook возвращается, когда запись нарушает minBookingNoticeMinutes
	ErrTooLateToBook = errors.New("create_appointment: too late to book this slot")

	// ErrInvalidTimeSlot возвращается, когда время не совпадает ни с одним рассчитанным слотом
	ErrInvalidTimeSlot = errors.New("create_appointment: invalid time slot")

	// ErrSlotNotAvailable возвращается, когда время сотрудника уже занято
	ErrSlotNotAvailable = errors.New("create_appointment: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
