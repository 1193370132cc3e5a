package copy_schedules

import (
	"context"
	"fmt"

	"github.com/m04kA/HMS-SchedulingService/internal/domain"
)

// UseCase use case копирования расписаний прошлой недели на текущую
type UseCase struct {
	scheduleRepo ScheduleRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(scheduleRepo ScheduleRepository, txManager TransactionManager, logger Logger) *UseCase {
	return &UseCase{
		scheduleRepo: scheduleRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case копирования расписаний.
// Исходными считаются активные расписания, действовавшие ровно неделю назад.
// Копии получают новые ID из БД, valid_from = сегодняшняя дата (без времени),
// остальные поля переносятся без изменений. Подбор и вставка идут в одной
// сериализуемой транзакции, чтобы два конкурентных запуска не задвоили копии.
func (uc *UseCase) Execute(ctx context.Context) (*Response, error) {
	// 1. Вычисляем целевую и исходную даты
	today := domain.DateOnly(uc.timeProvider.Now())
	lastWeek := today.AddDate(0, 0, -domain.ScheduleCopyOffsetDays)

	uc.logger.Info("CopySchedules: copying schedules active on %s to valid_from=%s",
		lastWeek.Format(domain.DateFormat), today.Format(domain.DateFormat))

	copied := make([]*domain.Schedule, 0)

	// 2. Подбираем и копируем в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Активные расписания, покрывавшие дату неделю назад (FOR UPDATE)
		sources, err := uc.scheduleRepo.ListActiveCovering(txCtx, lastWeek)
		if err != nil {
			uc.logger.Error("CopySchedules: failed to list source schedules: %v", err)
			return fmt.Errorf("%w: failed to list source schedules: %v", ErrInternal, err)
		}

		if len(sources) == 0 {
			uc.logger.Info("CopySchedules: no eligible schedules on %s, nothing to copy",
				lastWeek.Format(domain.DateFormat))
			return nil
		}

		// 2.2. Создаем копии: все поля исходного, кроме ID и valid_from
		for _, src := range sources {
			// Окно действия закрылось между исходной датой и сегодняшним днем:
			// копия нарушила бы инвариант valid_from <= valid_to
			if !src.Covers(today) {
				uc.logger.Info("CopySchedules: schedule id=%d expired on %s, skipping",
					src.ID, src.ValidTo.Format(domain.DateFormat))
				continue
			}

			clone := &domain.Schedule{
				DoctorID:     src.DoctorID,
				DepartmentID: src.DepartmentID,
				DayOfWeek:    src.DayOfWeek,
				StartTime:    src.StartTime,
				EndTime:      src.EndTime,
				ValidFrom:    today,
				ValidTo:      src.ValidTo,
				Status:       src.Status,
			}

			created, err := uc.scheduleRepo.Create(txCtx, clone)
			if err != nil {
				uc.logger.Error("CopySchedules: failed to copy schedule id=%d: %v", src.ID, err)
				return fmt.Errorf("%w: failed to copy schedule id=%d: %v", ErrInternal, src.ID, err)
			}

			copied = append(copied, created)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CopySchedules: copied %d schedules", len(copied))

	return &Response{
		SourceDate: lastWeek,
		TargetDate: today,
		Copied:     len(copied),
		Schedules:  copied,
	}, nil
}
