package list_leaves

import (
	"context"

	"github.com/m04kA/HMS-SchedulingService/internal/service/schedules/models"
)

type ScheduleService interface {
	ListLeaves(ctx context.Context, doctorID int64) (*models.LeaveListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
