package create_appointment

import (
	"time"

	"github.com/m04kA/HMS-SchedulingService/internal/domain"
	createAppointment "github.com/m04kA/HMS-SchedulingService/internal/usecase/create_appointment"
	"github.com/m04kA/HMS-SchedulingService/pkg/types"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	PatientID       int64   `json:"patientId"`
	DoctorID        int64   `json:"doctorId"`
	AppointmentDate string  `json:"appointmentDate"` // "2026-03-15"
	StartTime       string  `json:"startTime"`       // "09:30"
	DurationMinutes int     `json:"durationMinutes,omitempty"`
	Type            string  `json:"type"`
	Priority        string  `json:"priority,omitempty"`
	Room            *string `json:"room,omitempty"`
	Notes           *string `json:"notes,omitempty"`
	Symptoms        *string `json:"symptoms,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID              int64   `json:"id"`
	PatientID       int64   `json:"patientId"`
	DoctorID        int64   `json:"doctorId"`
	DepartmentID    int64   `json:"departmentId"`
	AppointmentDate string  `json:"appointmentDate"`
	StartTime       string  `json:"startTime"`
	EndTime         string  `json:"endTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Type            string  `json:"type"`
	Status          string  `json:"status"`
	Priority        string  `json:"priority"`
	PatientName     string  `json:"patientName"`
	DoctorName      string  `json:"doctorName"`
	Room            *string `json:"room,omitempty"`
	Notes           *string `json:"notes,omitempty"`
	Symptoms        *string `json:"symptoms,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest() (*createAppointment.Request, error) {
	// Парсим дату
	appointmentDate, err := time.Parse(domain.DateFormat, r.AppointmentDate)
	if err != nil {
		return nil, err
	}

	// Парсим время
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		PatientID:       r.PatientID,
		DoctorID:        r.DoctorID,
		Date:            appointmentDate,
		StartTime:       startTime,
		DurationMinutes: r.DurationMinutes,
		Type:            domain.AppointmentType(r.Type),
		Priority:        domain.AppointmentPriority(r.Priority),
		Room:            r.Room,
		Notes:           r.Notes,
		Symptoms:        r.Symptoms,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	if resp == nil {
		return nil
	}

	return &AppointmentResponse{
		ID:              resp.ID,
		PatientID:       resp.PatientID,
		DoctorID:        resp.DoctorID,
		DepartmentID:    resp.DepartmentID,
		AppointmentDate: resp.AppointmentDate.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		EndTime:         resp.EndTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Type:            resp.Type,
		Status:          resp.Status,
		Priority:        resp.Priority,
		PatientName:     resp.PatientName,
		DoctorName:      resp.DoctorName,
		Room:            resp.Room,
		Notes:           resp.Notes,
		Symptoms:        resp.Symptoms,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
