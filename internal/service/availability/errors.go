package availability

import "errors"

var (
	// ErrStaffNotFound возвращается, когда сотрудник не найден
	ErrStaffNotFound = errors.New("availability: staff not found")

	// ErrWindowNotFound возвращается, когда окно доступности не найдено
	ErrWindowNotFound = errors.New("availability: window not found")

	// ErrBusyBlockNotFound возвращается, когда блокировка не найдена
	ErrBusyBlockNotFound = errors.New("availability: busy block not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав на бизнес сотрудника
	ErrAccessDenied = errors.New("availability: access denied")

	// ErrDifferentBusiness возвращается при копировании окон сотруднику другого бизнеса
	ErrDifferentBusiness = errors.New("availability: staff members belong to different businesses")

	// ErrPastDate возвращается при блокировке прошедшей даты
	ErrPastDate = errors.New("availability: date is in the past")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("availability: internal error")
)
