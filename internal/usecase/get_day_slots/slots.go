package get_day_slots

import (
	"github.com/m04kA/HMS-SchedulingService/internal/domain"
	"github.com/m04kA/HMS-SchedulingService/pkg/types"
)

// buildSlotGrid строит сетку времен начала слотов рабочего дня:
// с 09:00 включительно до 17:00 не включительно с шагом 30 минут (16 слотов).
// Сетка фиксированная и не зависит от даты.
func buildSlotGrid() []types.TimeString {
	grid := make([]types.TimeString, 0, domain.SlotsPerDay)
	current := domain.ClinicOpenTime

	for current.IsBefore(domain.ClinicCloseTime) {
		// Слот не должен выходить за время закрытия
		slotEnd, err := current.AddMinutes(domain.SlotDurationMinutes)
		if err != nil || slotEnd.IsAfter(domain.ClinicCloseTime) {
			break
		}

		grid = append(grid, current)
		current = slotEnd
	}

	return grid
}

// markOccupiedSlots помечает занятость каждого слота сетки по записям дня.
// Слот занят, если с его интервалом пересекается хотя бы одна неотмененная
// запись; слот несет ID первой такой записи.
//
// Пересечение по строгим неравенствам: запись 11:00-11:30 и слот 11:30-12:00
// граничат, но НЕ пересекаются.
func markOccupiedSlots(grid []types.TimeString, appointments []*domain.Appointment) []domain.TimeSlot {
	slots := make([]domain.TimeSlot, len(grid))

	for i, slotStart := range grid {
		slots[i] = domain.TimeSlot{
			StartTime:       slotStart,
			DurationMinutes: domain.SlotDurationMinutes,
			Available:       true,
		}

		slotEnd, err := slotStart.AddMinutes(domain.SlotDurationMinutes)
		if err != nil {
			continue
		}

		for _, appt := range appointments {
			// Отмененные записи слот не занимают
			if !appt.BlocksSlot() {
				continue
			}

			apptStart := appt.StartTime
			apptEnd, err := appt.StartTime.AddMinutes(appt.DurationMinutes)
			if err != nil {
				// Если не можем вычислить конец записи, пропускаем
				continue
			}

			if apptStart.IsBefore(slotEnd) && apptEnd.IsAfter(slotStart) {
				id := appt.ID
				slots[i].Available = false
				slots[i].AppointmentID = &id
				break
			}
		}
	}

	return slots
}

// allUnavailableSlots строит сетку, в которой все слоты недоступны.
// Используется для дат, на которые у врача отмечен отпуск.
func allUnavailableSlots(grid []types.TimeString) []domain.TimeSlot {
	slots := make([]domain.TimeSlot, len(grid))

	for i, slotStart := range grid {
		slots[i] = domain.TimeSlot{
			StartTime:       slotStart,
			DurationMinutes: domain.SlotDurationMinutes,
			Available:       false,
		}
	}

	return slots
}
