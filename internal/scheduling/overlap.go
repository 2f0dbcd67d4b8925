package scheduling

import (
	"github.com/m04kA/randevu-service/internal/domain"
	"github.com/m04kA/randevu-service/pkg/types"
)

// overlaps проверяет РЕАЛЬНОЕ пересечение интервалов [aStart, aEnd) и [bStart, bEnd).
// Интервалы, которые только соприкасаются границами, не пересекаются:
// - слот 11:30-12:00, запись 11:20-11:40 -> пересечение
// - слот 11:30-12:00, запись 11:00-11:30 -> нет пересечения
func overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

// ExcludeBusy убирает слоты, пересекающиеся с разовыми блокировками.
// Блокировки должны относиться к той же дате, что и слоты
func ExcludeBusy(slots []domain.TimeSlot, durationMinutes int, blocks []domain.BusyBlock) []domain.TimeSlot {
	if len(blocks) == 0 {
		return slots
	}
	if durationMinutes == 0 {
		durationMinutes = domain.DefaultServiceDurationMinutes
	}

	result := make([]domain.TimeSlot, 0, len(slots))
	for _, slot := range slots {
		start, err := slot.Time.Minutes()
		if err != nil {
			continue
		}
		end := start + durationMinutes

		blocked := false
		for _, b := range blocks {
			bStart, errStart := b.StartTime.Minutes()
			bEnd, errEnd := b.EndTime.Minutes()
			if errStart != nil || errEnd != nil {
				// Блокировку с битым временем пропускаем
				continue
			}
			if overlaps(start, end, bStart, bEnd) {
				blocked = true
				break
			}
		}

		if !blocked {
			result = append(result, slot)
		}
	}

	return result
}

// MarkBooked помечает недоступными слоты, пересекающиеся с активными записями сотрудника.
// Слоты не удаляются: клиент видит, что время занято
func MarkBooked(slots []domain.TimeSlot, durationMinutes int, appointments []*domain.Appointment) []domain.TimeSlot {
	if durationMinutes == 0 {
		durationMinutes = domain.DefaultServiceDurationMinutes
	}

	result := make([]domain.TimeSlot, len(slots))
	for i, slot := range slots {
		result[i] = slot
		if CountOverlapping(slot.Time, durationMinutes, appointments) > 0 {
			result[i].Available = false
		}
	}

	return result
}

// CountOverlapping подсчитывает активные записи, пересекающиеся с интервалом
// [start, start+durationMinutes)
func CountOverlapping(start types.TimeString, durationMinutes int, appointments []*domain.Appointment) int {
	slotStart, err := start.Minutes()
	if err != nil {
		return 0
	}
	slotEnd := slotStart + durationMinutes

	count := 0
	for _, a := range appointments {
		if !a.IsActive() {
			continue
		}

		aStart, err := a.Time.Minutes()
		if err != nil {
			continue
		}
		aDuration := a.DurationMinutes
		if aDuration <= 0 {
			aDuration = domain.DefaultServiceDurationMinutes
		}

		if overlaps(slotStart, slotEnd, aStart, aStart+aDuration) {
			count++
		}
	}

	return count
}
