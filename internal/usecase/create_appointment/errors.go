package create_appointment

import "errors"

var (
	// ErrDoctorNotFound возвращается, когда врач не найден в реестре
	ErrDoctorNotFound = errors.New("create_appointment: doctor not found")

	// ErrPatientNotFound возвращается, когда пациент не найден
	ErrPatientNotFound = errors.New("create_appointment: patient not found")

	// ErrDoctorOnLeave возвращается, когда на выбранную дату у врача отмечен отпуск
	ErrDoctorOnLeave = errors.New("create_appointment: doctor is on leave on this date")

	// ErrSlotNotAvailable возвращается, когда слот уже занят неотмененной записью
	ErrSlotNotAvailable = errors.New("create_appointment: slot is not available")

	// ErrInvalidDate возвращается при некорректной дате записи
	ErrInvalidDate = errors.New("create_appointment: invalid appointment date")

	// ErrInvalidTimeSlot возвращается, когда время не попадает в сетку слотов
	// (не кратно 30 минутам или выходит за рабочий день 09:00-17:00)
	ErrInvalidTimeSlot = errors.New("create_appointment: invalid time slot")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
