package copy_schedules

import (
	"context"

	copySchedules "github.com/m04kA/HMS-SchedulingService/internal/usecase/copy_schedules"
)

type CopySchedulesUseCase interface {
	Execute(ctx context.Context) (*copySchedules.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
