package mark_leave

import (
	"context"

	"github.com/m04kA/HMS-SchedulingService/internal/service/schedules/models"
)

type ScheduleService interface {
	MarkLeave(ctx context.Context, doctorID int64, req *models.MarkLeaveRequest) (*models.MarkLeaveResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
