package deactivate_schedule

import (
	"context"

	"github.com/m04kA/HMS-SchedulingService/internal/service/schedules/models"
)

type ScheduleService interface {
	Deactivate(ctx context.Context, scheduleID int64) (*models.ScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
