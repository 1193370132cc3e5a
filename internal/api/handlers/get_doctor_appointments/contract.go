package get_doctor_appointments

import (
	"context"
	"time"

	"github.com/m04kA/HMS-SchedulingService/internal/service/appointments/models"
)

type AppointmentService interface {
	GetDoctorDay(ctx context.Context, doctorID int64, date *time.Time) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
