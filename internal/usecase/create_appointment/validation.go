package create_appointment

import (
	"fmt"
	"time"

	"github.com/m04kA/HMS-SchedulingService/internal/domain"
	"github.com/m04kA/HMS-SchedulingService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.PatientID <= 0 {
		return fmt.Errorf("%w: patientID must be positive", ErrInvalidInput)
	}

	if req.DoctorID <= 0 {
		return fmt.Errorf("%w: doctorID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if err := validateType(req.Type); err != nil {
		return err
	}

	if req.Priority != "" {
		if err := validatePriority(req.Priority); err != nil {
			return err
		}
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes too long (max %d)", ErrInvalidInput, domain.MaxNotesLength)
	}

	if req.Symptoms != nil && len(*req.Symptoms) > domain.MaxSymptomsLength {
		return fmt.Errorf("%w: symptoms too long (max %d)", ErrInvalidInput, domain.MaxSymptomsLength)
	}

	return nil
}

// validateType проверяет, что тип визита допустим
func validateType(t domain.AppointmentType) error {
	for _, valid := range domain.AppointmentTypes {
		if t == valid {
			return nil
		}
	}
	return fmt.Errorf("%w: unknown appointment type %q", ErrInvalidInput, t)
}

// validatePriority проверяет, что приоритет допустим
func validatePriority(p domain.AppointmentPriority) error {
	for _, valid := range domain.AppointmentPriorities {
		if p == valid {
			return nil
		}
	}
	return fmt.Errorf("%w: unknown priority %q", ErrInvalidInput, p)
}

// validateDate проверяет, что дата записи не в прошлом
func validateDate(date time.Time, now time.Time) error {
	if domain.DateOnly(date).Before(domain.DateOnly(now)) {
		return ErrInvalidDate
	}
	return nil
}

// validateTimeSlot проверяет, что (startTime, duration) попадает в сетку слотов:
// начало выровнено по 30-минутной границе от открытия, длительность кратна
// длительности слота, конец не позже закрытия.
func validateTimeSlot(startTime types.TimeString, durationMinutes int) error {
	if startTime.IsBefore(domain.ClinicOpenTime) {
		return fmt.Errorf("%w: %s is before opening time %s", ErrInvalidTimeSlot, startTime, domain.ClinicOpenTime)
	}

	offset, err := domain.ClinicOpenTime.MinutesBetween(startTime)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTimeSlot, err)
	}

	if offset%domain.SlotDurationMinutes != 0 {
		return fmt.Errorf("%w: %s is not aligned to the %d-minute grid", ErrInvalidTimeSlot, startTime, domain.SlotDurationMinutes)
	}

	if durationMinutes <= 0 || durationMinutes%domain.SlotDurationMinutes != 0 {
		return fmt.Errorf("%w: duration must be a positive multiple of %d minutes", ErrInvalidTimeSlot, domain.SlotDurationMinutes)
	}

	if durationMinutes > domain.MaxAppointmentDurationMinutes {
		return fmt.Errorf("%w: duration exceeds %d minutes", ErrInvalidTimeSlot, domain.MaxAppointmentDurationMinutes)
	}

	endTime, err := startTime.AddMinutes(durationMinutes)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTimeSlot, err)
	}

	if endTime.IsAfter(domain.ClinicCloseTime) {
		return fmt.Errorf("%w: %s-%s ends after closing time %s", ErrInvalidTimeSlot, startTime, endTime, domain.ClinicCloseTime)
	}

	return nil
}

// countOverlappingAppointments подсчитывает неотмененные записи,
// пересекающиеся с интервалом (startTime, durationMinutes).
// Пересечение по строгим неравенствам: граничащие интервалы не пересекаются.
func countOverlappingAppointments(
	startTime types.TimeString,
	durationMinutes int,
	appointments []*domain.Appointment,
) (int, error) {
	slotEnd, err := startTime.AddMinutes(durationMinutes)
	if err != nil {
		return 0, err
	}

	count := 0

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

		if apptStart.IsBefore(slotEnd) && apptEnd.IsAfter(startTime) {
			count++
		}
	}

	return count, nil
}
