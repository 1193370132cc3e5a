package schedules

import (
	"context"

	"github.com/m04kA/HMS-SchedulingService/internal/domain"
	"github.com/m04kA/HMS-SchedulingService/internal/integrations/staffservice"
)

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	Create(ctx context.Context, schedule *domain.Schedule) (*domain.Schedule, error)
	GetByID(ctx context.Context, id int64) (*domain.Schedule, error)
	ListWithFilter(ctx context.Context, filter domain.ScheduleFilter) ([]*domain.Schedule, error)
	Deactivate(ctx context.Context, id int64) error
}

// LeaveRepository интерфейс репозитория отпусков
type LeaveRepository interface {
	Create(ctx context.Context, leave *domain.DoctorLeave) (*domain.DoctorLeave, error)
	ListByDoctor(ctx context.Context, doctorID int64) ([]*domain.DoctorLeave, error)
}

// AppointmentRepository интерфейс репозитория записей
// Нужен для поиска конфликтующих записей при отметке отпуска
type AppointmentRepository interface {
	GetWithFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
}

// StaffServiceClient интерфейс клиента для StaffService
type StaffServiceClient interface {
	GetDoctor(ctx context.Context, doctorID int64) (*staffservice.Doctor, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
