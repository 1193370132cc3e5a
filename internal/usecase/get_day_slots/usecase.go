package get_day_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/HMS-SchedulingService/internal/domain"
	leaveRepo "github.com/m04kA/HMS-SchedulingService/internal/infra/storage/leave"
	staffClient "github.com/m04kA/HMS-SchedulingService/internal/integrations/staffservice"
)

// UseCase use case построения сетки слотов врача на день.
// Чистая read-side проекция: пересчитывается на каждый запрос,
// никакого кэширования поверх хранилища записей.
type UseCase struct {
	appointmentRepo AppointmentRepository
	leaveRepo       LeaveRepository
	staffClient     StaffServiceClient
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	leaveRepo LeaveRepository,
	staffClient StaffServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		leaveRepo:       leaveRepo,
		staffClient:     staffClient,
		logger:          logger,
	}
}

// Execute выполняет use case построения сетки слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetDaySlots: doctor=%d, date=%s", req.DoctorID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetDaySlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем существование врача в реестре
	if _, err := uc.staffClient.GetDoctor(ctx, req.DoctorID); err != nil {
		if errors.Is(err, staffClient.ErrDoctorNotFound) {
			uc.logger.Warn("GetDaySlots: doctor id=%d not found", req.DoctorID)
			return nil, ErrDoctorNotFound
		}
		uc.logger.Error("GetDaySlots: failed to get doctor id=%d: %v", req.DoctorID, err)
		return nil, fmt.Errorf("%w: failed to get doctor: %v", ErrInternal, err)
	}

	grid := buildSlotGrid()

	// 3. Отпуск на эту дату перекрывает расписание: вся сетка недоступна
	if _, err := uc.leaveRepo.GetByDoctorAndDate(ctx, req.DoctorID, req.Date); err == nil {
		uc.logger.Info("GetDaySlots: doctor=%d is on leave on %s, all slots unavailable",
			req.DoctorID, req.Date.Format(domain.DateFormat))
		return &Response{
			DoctorID: req.DoctorID,
			Date:     req.Date,
			OnLeave:  true,
			Slots:    allUnavailableSlots(grid),
		}, nil
	} else if !errors.Is(err, leaveRepo.ErrLeaveNotFound) {
		uc.logger.Error("GetDaySlots: failed to check leave: %v", err)
		return nil, fmt.Errorf("%w: failed to check leave: %v", ErrInternal, err)
	}

	// 4. Получаем неотмененные записи врача на эту дату
	filter := domain.AppointmentsFilter{
		DoctorID:         &req.DoctorID,
		Date:             &req.Date,
		IncludeCancelled: false,
	}

	appointments, err := uc.appointmentRepo.GetWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetDaySlots: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 5. Размечаем занятость сетки
	slots := markOccupiedSlots(grid, appointments)

	uc.logger.Info("GetDaySlots: generated %d slots for doctor=%d, date=%s",
		len(slots), req.DoctorID, req.Date.Format(domain.DateFormat))

	return &Response{
		DoctorID: req.DoctorID,
		Date:     req.Date,
		OnLeave:  false,
		Slots:    slots,
	}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.DoctorID <= 0 {
		return fmt.Errorf("%w: doctorID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}
