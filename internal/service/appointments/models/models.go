package models

import (
	"errors"
	"time"

	"github.com/m04kA/HMS-SchedulingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// Request модели

// UpdateStatusRequest запрос на обновление статуса записи
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// CancelAppointmentRequest запрос на отмену записи
type CancelAppointmentRequest struct {
	CancellationReason string `json:"cancellationReason"`
}

// GetAppointmentsRequest запрос на получение записей с фильтрацией
type GetAppointmentsRequest struct {
	DoctorID         *int64     `json:"doctorId,omitempty"`  // Фильтр по врачу (опционально)
	PatientID        *int64     `json:"patientId,omitempty"` // Фильтр по пациенту (опционально)
	Date             *time.Time `json:"date,omitempty"`      // Фильтр по дате (опционально)
	Status           *string    `json:"status,omitempty"`    // Фильтр по статусу (опционально)
	IncludeCancelled bool       `json:"includeCancelled,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetAppointmentsRequest) ToDomainFilter() (domain.AppointmentsFilter, error) {
	filter := domain.AppointmentsFilter{
		DoctorID:         r.DoctorID,
		PatientID:        r.PatientID,
		Date:             r.Date,
		IncludeCancelled: r.IncludeCancelled,
	}

	// Конвертируем статус если указан
	if r.Status != nil {
		status, err := ToDomainAppointmentStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// AppointmentResponse ответ с данными записи на прием
type AppointmentResponse struct {
	ID              int64  `json:"id"`
	PatientID       int64  `json:"patientId"`
	DoctorID        int64  `json:"doctorId"`
	DepartmentID    int64  `json:"departmentId"`
	AppointmentDate string `json:"appointmentDate"` // "2026-03-15"
	StartTime       string `json:"startTime"`       // "09:30"
	EndTime         string `json:"endTime"`         // "10:00"
	DurationMinutes int    `json:"durationMinutes"`
	Type            string `json:"type"`
	Status          string `json:"status"`
	Priority        string `json:"priority"`

	// Денормализованные данные
	PatientName string  `json:"patientName"`
	DoctorName  string  `json:"doctorName"`
	Room        *string `json:"room,omitempty"`
	Notes       *string `json:"notes,omitempty"`
	Symptoms    *string `json:"symptoms,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	resp := &AppointmentResponse{
		ID:                 a.ID,
		PatientID:          a.PatientID,
		DoctorID:           a.DoctorID,
		DepartmentID:       a.DepartmentID,
		AppointmentDate:    a.AppointmentDate.Format(domain.DateFormat),
		StartTime:          a.StartTime.String(),
		DurationMinutes:    a.DurationMinutes,
		Type:               string(a.Type),
		Status:             string(a.Status),
		Priority:           string(a.Priority),
		PatientName:        a.PatientName,
		DoctorName:         a.DoctorName,
		Room:               a.Room,
		Notes:              a.Notes,
		Symptoms:           a.Symptoms,
		CancellationReason: a.CancellationReason,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}

	// Конец приема вычисляется из начала и длительности
	if endTime, err := a.EndTime(); err == nil {
		resp.EndTime = endTime.String()
	}

	// Конвертируем CancelledAt в строку ISO 8601
	if a.CancelledAt != nil {
		cancelledStr := a.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	if appointments == nil {
		return &AppointmentListResponse{
			Appointments: []AppointmentResponse{},
		}
	}

	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, len(appointments)),
	}

	for i, appointment := range appointments {
		if apptResp := FromDomainAppointment(appointment); apptResp != nil {
			resp.Appointments[i] = *apptResp
		}
	}

	return resp
}

// ToDomainAppointmentStatus конвертирует строку в domain.AppointmentStatus с валидацией
func ToDomainAppointmentStatus(status string) (domain.AppointmentStatus, error) {
	s := domain.AppointmentStatus(status)

	for _, valid := range domain.AppointmentStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
