package mark_leave

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/HMS-SchedulingService/internal/api/handlers"
	"github.com/m04kA/HMS-SchedulingService/internal/service/schedules"
	"github.com/m04kA/HMS-SchedulingService/internal/service/schedules/models"
)

const (
	msgInvalidDoctorID    = "некорректный ID врача"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgDoctorNotFound     = "врач не найден"
	msgLeaveExists        = "отпуск на эту дату уже отмечен"
	msgInvalidInput       = "некорректные данные отпуска"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/doctors/{doctorId}/leaves
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем doctorId из URL
	vars := mux.Vars(r)
	doctorIDStr := vars["doctorId"]

	doctorID, err := strconv.ParseInt(doctorIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /doctors/{id}/leaves - Invalid doctor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDoctorID)
		return
	}

	var req models.MarkLeaveRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /doctors/{id}/leaves - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.MarkLeave(r.Context(), doctorID, &req)
	if err != nil {
		switch {
		case errors.Is(err, schedules.ErrDoctorNotFound):
			h.logger.Warn("POST /doctors/{id}/leaves - Doctor not found: doctor_id=%d", doctorID)
			handlers.RespondNotFound(w, msgDoctorNotFound)

		case errors.Is(err, schedules.ErrLeaveExists):
			h.logger.Warn("POST /doctors/{id}/leaves - Leave already exists: doctor_id=%d, date=%s",
				doctorID, req.LeaveDate)
			handlers.RespondError(w, http.StatusConflict, msgLeaveExists)

		case errors.Is(err, schedules.ErrInvalidInput):
			h.logger.Warn("POST /doctors/{id}/leaves - Invalid input: doctor_id=%d, error=%v", doctorID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /doctors/{id}/leaves - Failed to mark leave: doctor_id=%d, error=%v", doctorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /doctors/{id}/leaves - Leave marked successfully: doctor_id=%d, date=%s, conflicts=%d",
		doctorID, req.LeaveDate, len(result.ConflictingAppointments))
	handlers.RespondJSON(w, http.StatusCreated, result)
}
