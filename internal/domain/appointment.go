package domain

import (
	"time"

	"github.com/m04kA/HMS-SchedulingService/pkg/types"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusScheduled  AppointmentStatus = "scheduled"
	StatusConfirmed  AppointmentStatus = "confirmed"
	StatusInProgress AppointmentStatus = "in-progress"
	StatusCompleted  AppointmentStatus = "completed"
	StatusCancelled  AppointmentStatus = "cancelled"
	StatusNoShow     AppointmentStatus = "no-show"
)

// AppointmentType represents the kind of visit
type AppointmentType string

const (
	TypeConsultation AppointmentType = "consultation"
	TypeFollowUp     AppointmentType = "follow-up"
	TypeProcedure    AppointmentType = "procedure"
	TypeEmergency    AppointmentType = "emergency"
)

// AppointmentPriority represents the urgency of an appointment
type AppointmentPriority string

const (
	PriorityLow    AppointmentPriority = "low"
	PriorityMedium AppointmentPriority = "medium"
	PriorityHigh   AppointmentPriority = "high"
	PriorityUrgent AppointmentPriority = "urgent"
)

// Appointment represents a booked visit of a patient to a doctor
type Appointment struct {
	ID              int64
	PatientID       int64
	DoctorID        int64
	DepartmentID    int64
	AppointmentDate time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Type            AppointmentType
	Status          AppointmentStatus
	Priority        AppointmentPriority

	// Denormalized data for history and calendar views
	PatientName string
	DoctorName  string
	Room        *string
	Notes       *string
	Symptoms    *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// statusTransitions граф допустимых переходов статусов:
// scheduled -> confirmed -> in-progress -> completed,
// cancelled и no-show достижимы из любого нетерминального состояния
var statusTransitions = map[AppointmentStatus][]AppointmentStatus{
	StatusScheduled:  {StatusConfirmed, StatusCancelled, StatusNoShow},
	StatusConfirmed:  {StatusInProgress, StatusCancelled, StatusNoShow},
	StatusInProgress: {StatusCompleted, StatusCancelled, StatusNoShow},
	StatusCompleted:  {},
	StatusCancelled:  {},
	StatusNoShow:     {},
}

// IsTerminal returns true if no further status transitions are allowed
func (s AppointmentStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusNoShow
}

// CanTransitionTo returns true if the transition from s to next is allowed
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// BlocksSlot returns true if the appointment occupies its time slot.
// Только отмененная запись освобождает слот: по одному неотмененному
// визиту на (doctor, date, startTime).
func (a *Appointment) BlocksSlot() bool {
	return a.Status != StatusCancelled
}

// IsCancelled returns true if the appointment has been cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelled
}

// CanBeCancelled returns true if the appointment can still be cancelled
func (a *Appointment) CanBeCancelled() bool {
	return !a.Status.IsTerminal()
}

// EndTime returns the appointment end time (startTime + duration)
func (a *Appointment) EndTime() (types.TimeString, error) {
	return a.StartTime.AddMinutes(a.DurationMinutes)
}

// AppointmentsFilter фильтр для выборки записей
type AppointmentsFilter struct {
	DoctorID         *int64             // Фильтр по врачу (опционально)
	PatientID        *int64             // Фильтр по пациенту (опционально)
	Date             *time.Time         // Конкретная календарная дата (опционально)
	Status           *AppointmentStatus // Фильтр по статусу (опционально)
	IncludeCancelled bool               // Включать ли отмененные записи
}
