package schedules

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/HMS-SchedulingService/internal/domain"
	leaveRepo "github.com/m04kA/HMS-SchedulingService/internal/infra/storage/leave"
	scheduleRepo "github.com/m04kA/HMS-SchedulingService/internal/infra/storage/schedule"
	staffClient "github.com/m04kA/HMS-SchedulingService/internal/integrations/staffservice"
	"github.com/m04kA/HMS-SchedulingService/internal/service/schedules/models"
)

// Service сервис для работы с расписаниями и отпусками врачей
type Service struct {
	scheduleRepo    ScheduleRepository
	leaveRepo       LeaveRepository
	appointmentRepo AppointmentRepository
	staffClient     StaffServiceClient
	logger          Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(
	scheduleRepo ScheduleRepository,
	leaveRepo LeaveRepository,
	appointmentRepo AppointmentRepository,
	staffClient StaffServiceClient,
	logger Logger,
) *Service {
	return &Service{
		scheduleRepo:    scheduleRepo,
		leaveRepo:       leaveRepo,
		appointmentRepo: appointmentRepo,
		staffClient:     staffClient,
		logger:          logger,
	}
}

// List получает расписания с гибкой фильтрацией
// Каждое поле фильтра независимо: пустое значение или "all" означает wildcard,
// заполненные поля сочетаются по И. Пустой фильтр возвращает весь реестр.
func (s *Service) List(ctx context.Context, req *models.ListSchedulesRequest) (*models.ScheduleListResponse, error) {
	// Конвертируем request в domain фильтр
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	// Логируем запрос с деталями фильтрации
	logMsg := fmt.Sprintf("List: fetching schedules, activeFilters=%d", filter.CountActive())
	if filter.DoctorID != nil {
		logMsg += fmt.Sprintf(", doctor=%d", *filter.DoctorID)
	}
	if filter.DepartmentID != nil {
		logMsg += fmt.Sprintf(", department=%d", *filter.DepartmentID)
	}
	if filter.DayOfWeek != nil {
		logMsg += fmt.Sprintf(", dayOfWeek=%s", *filter.DayOfWeek)
	}
	if filter.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *filter.Status)
	}
	s.logger.Info(logMsg)

	schedules, err := s.scheduleRepo.ListWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d schedules", len(schedules))
	return models.FromDomainScheduleList(schedules, filter.CountActive()), nil
}

// Create создает новое расписание врача
func (s *Service) Create(ctx context.Context, req *models.CreateScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("Create: creating schedule for doctor=%d, dayOfWeek=%s", req.DoctorID, req.DayOfWeek)

	if req.DoctorID <= 0 {
		s.logger.Warn("Create: invalid doctorID=%d", req.DoctorID)
		return nil, fmt.Errorf("%w: doctorID must be positive", ErrInvalidInput)
	}

	// Конвертируем и валидируем запрос
	schedule, err := req.ToDomainSchedule()
	if err != nil {
		s.logger.Warn("Create: invalid schedule request: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// Начало работы должно быть раньше конца
	if !schedule.StartTime.IsBefore(schedule.EndTime) {
		s.logger.Warn("Create: startTime=%s is not before endTime=%s", schedule.StartTime, schedule.EndTime)
		return nil, fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}

	// Окно действия не должно быть вывернуто
	if schedule.ValidTo != nil && schedule.ValidTo.Before(schedule.ValidFrom) {
		s.logger.Warn("Create: validTo is before validFrom for doctor=%d", req.DoctorID)
		return nil, fmt.Errorf("%w: validTo must not be before validFrom", ErrInvalidInput)
	}

	// Проверяем, что врач существует
	if _, err := s.staffClient.GetDoctor(ctx, req.DoctorID); err != nil {
		if errors.Is(err, staffClient.ErrDoctorNotFound) {
			s.logger.Warn("Create: doctor id=%d not found", req.DoctorID)
			return nil, ErrDoctorNotFound
		}
		s.logger.Error("Create: failed to get doctor id=%d: %v", req.DoctorID, err)
		return nil, fmt.Errorf("%w: Create - failed to get doctor: %v", ErrInternal, err)
	}

	created, err := s.scheduleRepo.Create(ctx, schedule)
	if err != nil {
		s.logger.Error("Create: repository error for doctor=%d: %v", req.DoctorID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created schedule id=%d for doctor=%d", created.ID, req.DoctorID)
	return models.FromDomainSchedule(created), nil
}

// Deactivate деактивирует расписание (мягкое удаление)
// Запись остается в реестре со статусом inactive
func (s *Service) Deactivate(ctx context.Context, scheduleID int64) (*models.ScheduleResponse, error) {
	s.logger.Info("Deactivate: deactivating schedule id=%d", scheduleID)

	if err := s.scheduleRepo.Deactivate(ctx, scheduleID); err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			s.logger.Warn("Deactivate: schedule id=%d not found", scheduleID)
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("Deactivate: repository error for schedule id=%d: %v", scheduleID, err)
		return nil, fmt.Errorf("%w: Deactivate - repository error: %v", ErrInternal, err)
	}

	schedule, err := s.scheduleRepo.GetByID(ctx, scheduleID)
	if err != nil {
		s.logger.Error("Deactivate: failed to fetch schedule id=%d after deactivation: %v", scheduleID, err)
		return nil, fmt.Errorf("%w: Deactivate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Deactivate: successfully deactivated schedule id=%d", scheduleID)
	return models.FromDomainSchedule(schedule), nil
}

// MarkLeave отмечает отпуск врача на дату.
// Существующие записи на эту дату не отменяются автоматически: их ID
// возвращаются регистратуре для ручного переноса.
func (s *Service) MarkLeave(ctx context.Context, doctorID int64, req *models.MarkLeaveRequest) (*models.MarkLeaveResponse, error) {
	s.logger.Info("MarkLeave: marking leave for doctor=%d on %s", doctorID, req.LeaveDate)

	if doctorID <= 0 {
		s.logger.Warn("MarkLeave: invalid doctorID=%d", doctorID)
		return nil, fmt.Errorf("%w: doctorID must be positive", ErrInvalidInput)
	}

	if req.LeaveDate == "" {
		s.logger.Warn("MarkLeave: empty leave date for doctor=%d", doctorID)
		return nil, fmt.Errorf("%w: leaveDate is required", ErrInvalidInput)
	}

	leaveDate, err := time.Parse(domain.DateFormat, req.LeaveDate)
	if err != nil {
		s.logger.Warn("MarkLeave: invalid leave date %q for doctor=%d", req.LeaveDate, doctorID)
		return nil, fmt.Errorf("%w: invalid leaveDate format, expected YYYY-MM-DD", ErrInvalidInput)
	}

	// Проверяем, что врач существует
	if _, err := s.staffClient.GetDoctor(ctx, doctorID); err != nil {
		if errors.Is(err, staffClient.ErrDoctorNotFound) {
			s.logger.Warn("MarkLeave: doctor id=%d not found", doctorID)
			return nil, ErrDoctorNotFound
		}
		s.logger.Error("MarkLeave: failed to get doctor id=%d: %v", doctorID, err)
		return nil, fmt.Errorf("%w: MarkLeave - failed to get doctor: %v", ErrInternal, err)
	}

	leave := &domain.DoctorLeave{
		DoctorID:  doctorID,
		LeaveDate: domain.DateOnly(leaveDate),
		Note:      req.Note,
	}

	created, err := s.leaveRepo.Create(ctx, leave)
	if err != nil {
		if errors.Is(err, leaveRepo.ErrLeaveExists) {
			s.logger.Warn("MarkLeave: leave already exists for doctor=%d on %s", doctorID, req.LeaveDate)
			return nil, ErrLeaveExists
		}
		s.logger.Error("MarkLeave: repository error for doctor=%d: %v", doctorID, err)
		return nil, fmt.Errorf("%w: MarkLeave - repository error: %v", ErrInternal, err)
	}

	// Собираем неотмененные записи на дату отпуска
	conflicting, err := s.appointmentRepo.GetWithFilter(ctx, domain.AppointmentsFilter{
		DoctorID:         &doctorID,
		Date:             &leave.LeaveDate,
		IncludeCancelled: false,
	})
	if err != nil {
		s.logger.Error("MarkLeave: failed to list conflicting appointments for doctor=%d: %v", doctorID, err)
		return nil, fmt.Errorf("%w: MarkLeave - repository error: %v", ErrInternal, err)
	}

	conflictingIDs := make([]int64, 0, len(conflicting))
	for _, appt := range conflicting {
		conflictingIDs = append(conflictingIDs, appt.ID)
	}

	if len(conflictingIDs) > 0 {
		s.logger.Warn("MarkLeave: doctor=%d has %d appointments on %s requiring rescheduling",
			doctorID, len(conflictingIDs), req.LeaveDate)
	}

	s.logger.Info("MarkLeave: successfully marked leave id=%d for doctor=%d", created.ID, doctorID)

	return &models.MarkLeaveResponse{
		Leave:                   *models.FromDomainLeave(created),
		ConflictingAppointments: conflictingIDs,
	}, nil
}

// ListLeaves получает все отпуска врача
func (s *Service) ListLeaves(ctx context.Context, doctorID int64) (*models.LeaveListResponse, error) {
	s.logger.Info("ListLeaves: fetching leaves for doctor=%d", doctorID)

	if doctorID <= 0 {
		s.logger.Warn("ListLeaves: invalid doctorID=%d", doctorID)
		return nil, fmt.Errorf("%w: doctorID must be positive", ErrInvalidInput)
	}

	leaves, err := s.leaveRepo.ListByDoctor(ctx, doctorID)
	if err != nil {
		s.logger.Error("ListLeaves: repository error for doctor=%d: %v", doctorID, err)
		return nil, fmt.Errorf("%w: ListLeaves - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListLeaves: successfully fetched %d leaves for doctor=%d", len(leaves), doctorID)
	return models.FromDomainLeaveList(doctorID, leaves), nil
}
