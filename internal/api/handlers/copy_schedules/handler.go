package copy_schedules

import (
	"net/http"

	"github.com/m04kA/HMS-SchedulingService/internal/api/handlers"
	"github.com/m04kA/HMS-SchedulingService/internal/domain"
	scheduleModels "github.com/m04kA/HMS-SchedulingService/internal/service/schedules/models"
	copySchedules "github.com/m04kA/HMS-SchedulingService/internal/usecase/copy_schedules"
)

type Handler struct {
	useCase CopySchedulesUseCase
	logger  Logger
}

func NewHandler(useCase CopySchedulesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/schedules/copy
// Тело запроса не требуется: исходная и целевая даты выводятся из текущей
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.useCase.Execute(r.Context())
	if err != nil {
		h.logger.Error("POST /schedules/copy - Failed to copy schedules: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /schedules/copy - Copied %d schedules from %s",
		result.Copied, result.SourceDate.Format(domain.DateFormat))
	handlers.RespondJSON(w, http.StatusOK, fromUseCaseResponse(result))
}

// fromUseCaseResponse конвертирует ответ use case в HTTP модель
func fromUseCaseResponse(resp *copySchedules.Response) *scheduleModels.CopySchedulesResponse {
	result := &scheduleModels.CopySchedulesResponse{
		SourceDate: resp.SourceDate.Format(domain.DateFormat),
		TargetDate: resp.TargetDate.Format(domain.DateFormat),
		Copied:     resp.Copied,
		Schedules:  make([]scheduleModels.ScheduleResponse, 0, len(resp.Schedules)),
	}

	for _, schedule := range resp.Schedules {
		if scheduleResp := scheduleModels.FromDomainSchedule(schedule); scheduleResp != nil {
			result.Schedules = append(result.Schedules, *scheduleResp)
		}
	}

	return result
}
