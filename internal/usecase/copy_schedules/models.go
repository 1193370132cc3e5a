package copy_schedules

import (
	"time"

	"github.com/m04kA/HMS-SchedulingService/internal/domain"
)

// Response модель ответа операции копирования расписаний
type Response struct {
	SourceDate time.Time          // Дата, на которую подбирались исходные расписания
	TargetDate time.Time          // Дата начала действия копий
	Copied     int                // Количество созданных копий
	Schedules  []*domain.Schedule // Созданные копии
}
