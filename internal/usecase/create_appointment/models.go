package create_appointment

import (
	"time"

	"github.com/m04kA/HMS-SchedulingService/internal/domain"
	"github.com/m04kA/HMS-SchedulingService/pkg/types"
)

// Request модель запроса на создание записи на прием
type Request struct {
	PatientID       int64                      // ID пациента
	DoctorID        int64                      // ID врача
	Date            time.Time                  // Дата приема (без времени)
	StartTime       types.TimeString           // Время начала слота ("09:30")
	DurationMinutes int                        // Длительность (0 = длительность одного слота)
	Type            domain.AppointmentType     // Тип визита
	Priority        domain.AppointmentPriority // Приоритет ("" = medium)
	Room            *string                    // Кабинет (опционально)
	Notes           *string                    // Заметки (опционально)
	Symptoms        *string                    // Симптомы (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	ID              int64
	PatientID       int64
	DoctorID        int64
	DepartmentID    int64
	AppointmentDate time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int
	Type            string
	Status          string
	Priority        string

	// Денормализованные данные
	PatientName string
	DoctorName  string
	Room        *string
	Notes       *string
	Symptoms    *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
