package list_schedules

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/HMS-SchedulingService/internal/api/handlers"
	"github.com/m04kA/HMS-SchedulingService/internal/service/schedules"
	"github.com/m04kA/HMS-SchedulingService/internal/service/schedules/models"
)

const (
	msgInvalidDoctorID     = "некорректный ID врача"
	msgInvalidDepartmentID = "некорректный ID отделения"
	msgInvalidFilter       = "некорректные параметры фильтра"
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

// Handle GET /api/v1/schedules?doctorId=&departmentId=&dayOfWeek=&status=
// Каждый параметр опционален, значение "all" эквивалентно его отсутствию
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &models.ListSchedulesRequest{
		DayOfWeek: query.Get("dayOfWeek"),
		Status:    query.Get("status"),
	}

	if doctorIDStr := query.Get("doctorId"); doctorIDStr != "" && doctorIDStr != models.Wildcard {
		doctorID, err := strconv.ParseInt(doctorIDStr, 10, 64)
		if err != nil {
			h.logger.Warn("GET /schedules - Invalid doctor ID %q: %v", doctorIDStr, err)
			handlers.RespondBadRequest(w, msgInvalidDoctorID)
			return
		}
		req.DoctorID = &doctorID
	}

	if departmentIDStr := query.Get("departmentId"); departmentIDStr != "" && departmentIDStr != models.Wildcard {
		departmentID, err := strconv.ParseInt(departmentIDStr, 10, 64)
		if err != nil {
			h.logger.Warn("GET /schedules - Invalid department ID %q: %v", departmentIDStr, err)
			handlers.RespondBadRequest(w, msgInvalidDepartmentID)
			return
		}
		req.DepartmentID = &departmentID
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, schedules.ErrInvalidInput):
			h.logger.Warn("GET /schedules - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /schedules - Failed to list schedules: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /schedules - Retrieved %d schedules, activeFilters=%d",
		len(result.Schedules), result.ActiveFilters)
	handlers.RespondJSON(w, http.StatusOK, result)
}
