package scheduling

import (
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/randevu-service/internal/domain"
	"github.com/m04kA/randevu-service/pkg/types"
)

// DefaultLeadTimeMinutes минимальное время между "сейчас" и началом слота для записи на сегодня
const DefaultLeadTimeMinutes = 60

// Params входные данные расчёта слотов
type Params struct {
	// Windows окна сотрудника на день недели Date. Фильтрация по дню недели - на вызывающей стороне
	Windows []domain.AvailabilityWindow
	// DurationMinutes длительность услуги и шаг генерации. 0 = 60 минут
	DurationMinutes int
	// Date календарная дата, время суток игнорируется
	Date time.Time
	// Now текущий момент. Его локация считается локацией бизнеса
	Now time.Time
	// LeadTimeMinutes минимальное время до начала слота, применяется только к сегодняшней дате
	LeadTimeMinutes int
}

// ComputeSlots рассчитывает слоты с минимальным временем до записи по умолчанию (1 час)
func ComputeSlots(windows []domain.AvailabilityWindow, durationMinutes int, date, now time.Time) ([]domain.TimeSlot, error) {
	return Compute(Params{
		Windows:         windows,
		DurationMinutes: durationMinutes,
		Date:            date,
		Now:             now,
		LeadTimeMinutes: DefaultLeadTimeMinutes,
	})
}

// Compute генерирует слоты шагом DurationMinutes от начала каждого активного окна.
//
// Слот выдаётся, только если услуга целиком помещается в окно. Окна не сортируются
// и не объединяются: пересекающиеся окна дают повторяющиеся слоты.
// При пустом результате возвращается ErrNoWorkingHours или ErrNoFreeSlots
// вместе с пустым (не nil) слайсом.
func Compute(p Params) ([]domain.TimeSlot, error) {
	duration := p.DurationMinutes
	if duration == 0 {
		duration = domain.DefaultServiceDurationMinutes
	}
	if duration < 0 {
		return nil, &ValidationError{Field: "durationMinutes", Value: strconv.Itoa(duration), Reason: "must be positive"}
	}
	if p.LeadTimeMinutes < 0 {
		return nil, &ValidationError{Field: "leadTimeMinutes", Value: strconv.Itoa(p.LeadTimeMinutes), Reason: "must not be negative"}
	}

	bounds, err := windowBounds(p.Windows)
	if err != nil {
		return nil, err
	}

	if isDateBefore(p.Date, p.Now) {
		return []domain.TimeSlot{}, ErrPastDate
	}

	isToday := isSameDay(p.Date, p.Now)
	earliest := p.Now.Add(time.Duration(p.LeadTimeMinutes) * time.Minute)
	year, month, day := p.Date.Date()

	slots := make([]domain.TimeSlot, 0)
	activeWindows := 0

	for i, w := range p.Windows {
		if !w.Active {
			continue
		}
		activeWindows++

		start, end := bounds[i][0], bounds[i][1]
		for cursor := start; cursor+duration <= end; cursor += duration {
			if isToday {
				slotAt := time.Date(year, month, day, cursor/60, cursor%60, 0, 0, p.Now.Location())
				if slotAt.Before(earliest) {
					continue
				}
			}

			// cursor < end <= 24:00, поэтому выход за сутки невозможен
			t, err := types.FromMinutes(cursor)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrValidation, err)
			}
			slots = append(slots, domain.TimeSlot{Time: t, Available: true})
		}
	}

	if len(slots) == 0 {
		if activeWindows == 0 {
			return slots, ErrNoWorkingHours
		}
		return slots, ErrNoFreeSlots
	}

	return slots, nil
}

// windowBounds валидирует активные окна и возвращает их границы в минутах от начала суток.
// Неактивные окна слотов не дают и не проверяются, их границы остаются нулевыми
func windowBounds(windows []domain.AvailabilityWindow) ([][2]int, error) {
	bounds := make([][2]int, len(windows))

	for i, w := range windows {
		if !w.Active {
			continue
		}

		if !domain.IsValidDayOfWeek(w.DayOfWeek) {
			return nil, &ValidationError{
				Field:  fmt.Sprintf("windows[%d].dayOfWeek", i),
				Value:  strconv.Itoa(w.DayOfWeek),
				Reason: "must be in range 0..6",
			}
		}

		start, err := w.StartTime.Minutes()
		if err != nil {
			return nil, &ValidationError{
				Field:  fmt.Sprintf("windows[%d].startTime", i),
				Value:  w.StartTime.String(),
				Reason: "expected HH:MM",
			}
		}

		end, err := w.EndTime.Minutes()
		if err != nil {
			return nil, &ValidationError{
				Field:  fmt.Sprintf("windows[%d].endTime", i),
				Value:  w.EndTime.String(),
				Reason: "expected HH:MM",
			}
		}

		bounds[i] = [2]int{start, end}
	}

	return bounds, nil
}

// isSameDay проверяет, что две даты относятся к одному календарному дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateBefore проверяет, что календарный день date раньше календарного дня now
func isDateBefore(date, now time.Time) bool {
	y1, m1, d1 := date.Date()
	y2, m2, d2 := now.Date()
	dateOnly := time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC)
	nowOnly := time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC)
	return dateOnly.Before(nowOnly)
}

// IsPastDate проверяет, что календарный день date раньше сегодняшнего
func IsPastDate(date, now time.Time) bool {
	return isDateBefore(date, now)
}

// IsToday проверяет, что date - сегодняшний календарный день
func IsToday(date, now time.Time) bool {
	return isSameDay(date, now)
}
