package get_available_slots

import (
	"errors"
	"fmt"
)

var (
	// ErrStaffNotFound возвращается, когда сотрудник не найден
	ErrStaffNotFound = errors.New("staff not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена или отключена
	ErrServiceNotFound = errors.New("service not found")

	// ErrServiceNotProvided возвращается, когда сотрудник не оказывает услугу
	ErrServiceNotProvided = errors.New("service is not provided by this staff member")

	// ErrPastDate возвращается для дат раньше сегодняшнего дня
	ErrPastDate = errors.New("date is in the past")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("date is too far in the future")

	// ErrNoAvailability общий случай пустого результата
	ErrNoAvailability = errors.New("no availability")

	// ErrNoWorkingHours у сотрудника нет активных окон в этот день недели
	ErrNoWorkingHours = fmt.Errorf("%w: no working hours", ErrNoAvailability)

	// ErrNoFreeSlots окна есть, но ни один слот не подошёл
	ErrNoFreeSlots = fmt.Errorf("%w: no free slots", ErrNoAvailability)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvalidData возвращается, когда сохранённые окна доступности некорректны
	ErrInvalidData = errors.New("invalid availability data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
