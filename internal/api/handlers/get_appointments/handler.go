package get_appointments

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/m04kA/HMS-SchedulingService/internal/api/handlers"
	"github.com/m04kA/HMS-SchedulingService/internal/domain"
	"github.com/m04kA/HMS-SchedulingService/internal/service/appointments"
	"github.com/m04kA/HMS-SchedulingService/internal/service/appointments/models"
)

const (
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidDoctorID  = "некорректный ID врача"
	msgInvalidPatientID = "некорректный ID пациента"
	msgInvalidInput     = "некорректные параметры запроса"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/appointments?date=&doctorId=&patientId=&status=&includeCancelled=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &models.GetAppointmentsRequest{}

	// Все параметры фильтра опциональны
	if dateStr := query.Get("date"); dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			h.logger.Warn("GET /appointments - Invalid date %q: %v", dateStr, err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.Date = &date
	}

	if doctorIDStr := query.Get("doctorId"); doctorIDStr != "" {
		doctorID, err := strconv.ParseInt(doctorIDStr, 10, 64)
		if err != nil {
			h.logger.Warn("GET /appointments - Invalid doctor ID %q: %v", doctorIDStr, err)
			handlers.RespondBadRequest(w, msgInvalidDoctorID)
			return
		}
		req.DoctorID = &doctorID
	}

	if patientIDStr := query.Get("patientId"); patientIDStr != "" {
		patientID, err := strconv.ParseInt(patientIDStr, 10, 64)
		if err != nil {
			h.logger.Warn("GET /appointments - Invalid patient ID %q: %v", patientIDStr, err)
			handlers.RespondBadRequest(w, msgInvalidPatientID)
			return
		}
		req.PatientID = &patientID
	}

	if statusStr := query.Get("status"); statusStr != "" {
		req.Status = &statusStr
	}

	if query.Get("includeCancelled") == "true" {
		req.IncludeCancelled = true
	}

	result, err := h.service.GetWithFilter(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /appointments - Failed to get appointments: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /appointments - Retrieved %d appointments", len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result)
}
