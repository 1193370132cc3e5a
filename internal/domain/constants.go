package domain

import "github.com/m04kA/HMS-SchedulingService/pkg/types"

// Clinic day grid: 16 slots of 30 minutes from 09:00 inclusive to 17:00 exclusive
const (
	ClinicOpenTime      = types.TimeString("09:00")
	ClinicCloseTime     = types.TimeString("17:00")
	SlotDurationMinutes = 30
	SlotsPerDay         = 16
)

// Business validation constants
const (
	MaxAppointmentDurationMinutes = 240 // полдня, кратно длительности слота
	MaxNotesLength                = 500
	MaxSymptomsLength             = 500
	MaxLeaveNoteLength            = 200
	MaxCancellationReasonLength   = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ScheduleCopyOffsetDays смещение для операции копирования расписаний:
// источником служат расписания, действовавшие неделю назад
const ScheduleCopyOffsetDays = 7

// AppointmentTypes допустимые типы визитов
var AppointmentTypes = []AppointmentType{
	TypeConsultation,
	TypeFollowUp,
	TypeProcedure,
	TypeEmergency,
}

// AppointmentPriorities допустимые приоритеты
var AppointmentPriorities = []AppointmentPriority{
	PriorityLow,
	PriorityMedium,
	PriorityHigh,
	PriorityUrgent,
}

// AppointmentStatuses все статусы записи
var AppointmentStatuses = []AppointmentStatus{
	StatusScheduled,
	StatusConfirmed,
	StatusInProgress,
	StatusCompleted,
	StatusCancelled,
	StatusNoShow,
}

// BlockingStatuses статусы, при которых запись занимает свой слот.
// Используется при подсчете занятости: слот освобождает только отмена.
var BlockingStatuses = []AppointmentStatus{
	StatusScheduled,
	StatusConfirmed,
	StatusInProgress,
	StatusCompleted,
	StatusNoShow,
}
