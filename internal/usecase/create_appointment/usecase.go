package create_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/HMS-SchedulingService/internal/domain"
	appointmentRepo "github.com/m04kA/HMS-SchedulingService/internal/infra/storage/appointment"
	leaveRepo "github.com/m04kA/HMS-SchedulingService/internal/infra/storage/leave"
	patientClient "github.com/m04kA/HMS-SchedulingService/internal/integrations/patientservice"
	staffClient "github.com/m04kA/HMS-SchedulingService/internal/integrations/staffservice"
)

// UseCase use case создания записи на прием
type UseCase struct {
	appointmentRepo AppointmentRepository
	leaveRepo       LeaveRepository
	staffClient     StaffServiceClient
	patientClient   PatientServiceClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	leaveRepo LeaveRepository,
	staffClient StaffServiceClient,
	patientClient PatientServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		leaveRepo:       leaveRepo,
		staffClient:     staffClient,
		patientClient:   patientClient,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания записи.
// Проверка занятости слота и вставка выполняются в сериализуемой транзакции
// с блокировкой записей дня (FOR UPDATE), чтобы два конкурентных бронирования
// одного слота не прошли одновременно.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: patient=%d, doctor=%d, date=%s, time=%s",
		req.PatientID, req.DoctorID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// Дефолты: одна ячейка сетки, средний приоритет
	durationMinutes := req.DurationMinutes
	if durationMinutes == 0 {
		durationMinutes = domain.SlotDurationMinutes
	}

	priority := req.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Валидация даты и попадания в сетку слотов
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("CreateAppointment: date validation failed: %v", err)
		return nil, err
	}

	if err := validateTimeSlot(req.StartTime, durationMinutes); err != nil {
		uc.logger.Warn("CreateAppointment: time slot validation failed: %v", err)
		return nil, err
	}

	// 4. Получаем врача из реестра
	doctor, err := uc.staffClient.GetDoctor(ctx, req.DoctorID)
	if err != nil {
		if errors.Is(err, staffClient.ErrDoctorNotFound) {
			uc.logger.Warn("CreateAppointment: doctor id=%d not found", req.DoctorID)
			return nil, ErrDoctorNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get doctor id=%d: %v", req.DoctorID, err)
		return nil, fmt.Errorf("%w: failed to get doctor: %v", ErrInternal, err)
	}

	// 5. Получаем пациента
	patient, err := uc.patientClient.GetPatient(ctx, req.PatientID)
	if err != nil {
		if errors.Is(err, patientClient.ErrPatientNotFound) {
			uc.logger.Warn("CreateAppointment: patient id=%d not found", req.PatientID)
			return nil, ErrPatientNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get patient id=%d: %v", req.PatientID, err)
		return nil, fmt.Errorf("%w: failed to get patient: %v", ErrInternal, err)
	}

	// Переменная для хранения результата
	var result *domain.Appointment

	// 6. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Отпуск врача на эту дату блокирует бронирование
		if _, err := uc.leaveRepo.GetByDoctorAndDate(txCtx, req.DoctorID, req.Date); err == nil {
			uc.logger.Warn("CreateAppointment: doctor=%d is on leave on %s",
				req.DoctorID, req.Date.Format(domain.DateFormat))
			return ErrDoctorOnLeave
		} else if !errors.Is(err, leaveRepo.ErrLeaveNotFound) {
			uc.logger.Error("CreateAppointment: failed to check leave: %v", err)
			return fmt.Errorf("%w: failed to check leave: %v", ErrInternal, err)
		}

		// 6.2. Получаем неотмененные записи дня с блокировкой (FOR UPDATE)
		filter := domain.AppointmentsFilter{
			DoctorID:         &req.DoctorID,
			Date:             &req.Date,
			IncludeCancelled: false,
		}

		appointments, err := uc.appointmentRepo.GetWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		// 6.3. Проверяем доступность слота: по одной неотмененной записи на слот
		overlappingCount, err := countOverlappingAppointments(req.StartTime, durationMinutes, appointments)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to count overlapping appointments: %v", err)
			return fmt.Errorf("%w: failed to count overlapping appointments: %v", ErrInternal, err)
		}

		if overlappingCount > 0 {
			uc.logger.Warn("CreateAppointment: slot %s on %s already taken for doctor=%d",
				req.StartTime, req.Date.Format(domain.DateFormat), req.DoctorID)
			return ErrSlotNotAvailable
		}

		// 6.4. Создаем запись с денормализацией имен
		appt := &domain.Appointment{
			PatientID:       req.PatientID,
			DoctorID:        req.DoctorID,
			DepartmentID:    doctor.DepartmentID,
			AppointmentDate: req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: durationMinutes,
			Type:            req.Type,
			Status:          domain.StatusScheduled,
			Priority:        priority,
			// Денормализация для истории и календарных представлений
			PatientName: patient.FullName,
			DoctorName:  doctor.FullName,
			Room:        req.Room,
			Notes:       req.Notes,
			Symptoms:    req.Symptoms,
		}

		created, err := uc.appointmentRepo.Create(txCtx, appt)
		if err != nil {
			// Частичный уникальный индекс - последний рубеж против двойного бронирования
			if errors.Is(err, appointmentRepo.ErrSlotTaken) {
				uc.logger.Warn("CreateAppointment: unique index rejected duplicate slot for doctor=%d", req.DoctorID)
				return ErrSlotNotAvailable
			}
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d", result.ID)

	endTime, err := result.EndTime()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to calculate end time: %v", ErrInternal, err)
	}

	return &Response{
		ID:              result.ID,
		PatientID:       result.PatientID,
		DoctorID:        result.DoctorID,
		DepartmentID:    result.DepartmentID,
		AppointmentDate: result.AppointmentDate,
		StartTime:       result.StartTime,
		EndTime:         endTime,
		DurationMinutes: result.DurationMinutes,
		Type:            string(result.Type),
		Status:          string(result.Status),
		Priority:        string(result.Priority),
		PatientName:     result.PatientName,
		DoctorName:      result.DoctorName,
		Room:            result.Room,
		Notes:           result.Notes,
		Symptoms:        result.Symptoms,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}
