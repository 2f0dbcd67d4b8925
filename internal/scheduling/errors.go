package scheduling

import (
	"errors"
	"fmt"
)

var (
	// ErrPastDate возвращается, когда запрошенная дата раньше сегодняшней
	ErrPastDate = errors.New("scheduling: date is in the past")

	// ErrNoAvailability возвращается, когда на дату нет ни одного слота
	ErrNoAvailability = errors.New("scheduling: no availability")

	// ErrNoWorkingHours сотрудник не работает в этот день недели (нет активных окон)
	ErrNoWorkingHours = fmt.Errorf("%w: no working hours on this day", ErrNoAvailability)

	// ErrNoFreeSlots окна есть, но ни один слот не подошёл (длительность, минимальное время до записи)
	ErrNoFreeSlots = fmt.Errorf("%w: no slot fits the working hours", ErrNoAvailability)

	// ErrValidation возвращается при некорректных входных данных
	ErrValidation = errors.New("scheduling: validation error")
)

// ValidationError описывает некорректное поле входных данных
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v: %s=%q: %s", ErrValidation, e.Field, e.Value, e.Reason)
}

// Is позволяет проверять ошибку через errors.Is(err, ErrValidation)
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
