package schedule

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/HMS-SchedulingService/internal/domain"
	"github.com/m04kA/HMS-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/HMS-SchedulingService/pkg/psqlbuilder"
)

// DBExecutor интерфейс выполнения запросов (переиспользуем из dbmetrics)
type DBExecutor = dbmetrics.DBExecutor

// weekdayOrder сортировка дня недели в календарном порядке:
// VARCHAR-колонка по ASC дала бы алфавитный порядок (friday, monday, ...)
const weekdayOrder = "CASE day_of_week " +
	"WHEN 'monday' THEN 1 " +
	"WHEN 'tuesday' THEN 2 " +
	"WHEN 'wednesday' THEN 3 " +
	"WHEN 'thursday' THEN 4 " +
	"WHEN 'friday' THEN 5 " +
	"WHEN 'saturday' THEN 6 " +
	"WHEN 'sunday' THEN 7 END"

// scheduleColumns полный список колонок таблицы schedules
var scheduleColumns = []string{
	"id",
	"doctor_id",
	"department_id",
	"day_of_week",
	"start_time",
	"end_time",
	"valid_from",
	"valid_to",
	"status",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с расписаниями врачей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое расписание.
// ID выдает хранилище (bigserial) - это гарантирует уникальность
// без временных меток и случайных суффиксов.
func (r *Repository) Create(ctx context.Context, schedule *domain.Schedule) (*domain.Schedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("schedules").
		Columns(
			"doctor_id",
			"department_id",
			"day_of_week",
			"start_time",
			"end_time",
			"valid_from",
			"valid_to",
			"status",
		).
		Values(
			schedule.DoctorID,
			schedule.DepartmentID,
			schedule.DayOfWeek,
			schedule.StartTime,
			schedule.EndTime,
			schedule.ValidFrom,
			schedule.ValidTo,
			schedule.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&schedule.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	schedule.CreatedAt = createdAt.Time
	schedule.UpdatedAt = updatedAt.Time

	return schedule, nil
}

// GetByID получает расписание по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Schedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(scheduleColumns...).
		From("schedules").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	schedule, err := scanSchedule(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan schedule: %v", ErrScanRow, err)
	}

	return schedule, nil
}

// ListWithFilter получает расписания по фильтру реестра.
// Каждое nil-поле фильтра - wildcard "all": условие не добавляется,
// поэтому полностью пустой фильтр возвращает весь реестр без изменений.
func (r *Repository) ListWithFilter(ctx context.Context, filter domain.ScheduleFilter) ([]*domain.Schedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(scheduleColumns...).
		From("schedules")

	if filter.DoctorID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"doctor_id": *filter.DoctorID})
	}

	if filter.DepartmentID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"department_id": *filter.DepartmentID})
	}

	if filter.DayOfWeek != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"day_of_week": *filter.DayOfWeek})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}

	query, args, err := selectBuilder.
		OrderBy("doctor_id ASC", weekdayOrder, "start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanSchedules(rows)
}

// ListActiveCovering получает активные расписания, окно действия которых
// покрывает указанную дату (valid_from <= date <= valid_to, NULL = "always").
// Используется операцией копирования расписаний.
func (r *Repository) ListActiveCovering(ctx context.Context, date time.Time) ([]*domain.Schedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	day := domain.DateOnly(date)

	selectBuilder := psqlbuilder.Select(scheduleColumns...).
		From("schedules").
		Where(squirrel.Eq{"status": domain.ScheduleActive}).
		Where(squirrel.LtOrEq{"valid_from": day}).
		Where(squirrel.Or{
			squirrel.Eq{"valid_to": nil},
			squirrel.GtOrEq{"valid_to": day},
		}).
		OrderBy("doctor_id ASC", weekdayOrder, "start_time ASC")

	// Внутри транзакции копирования блокируем исходные строки
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveCovering - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveCovering - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanSchedules(rows)
}

// Deactivate помечает расписание неактивным (мягкое удаление)
func (r *Repository) Deactivate(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("schedules").
		Set("status", domain.ScheduleInactive).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Deactivate - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Deactivate - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Deactivate - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrScheduleNotFound
	}

	return nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanSchedule сканирует одно расписание
func scanSchedule(row rowScanner) (*domain.Schedule, error) {
	var schedule domain.Schedule
	var validTo sql.NullTime
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&schedule.ID,
		&schedule.DoctorID,
		&schedule.DepartmentID,
		&schedule.DayOfWeek,
		&schedule.StartTime,
		&schedule.EndTime,
		&schedule.ValidFrom,
		&validTo,
		&schedule.Status,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, err
	}

	if validTo.Valid {
		schedule.ValidTo = &validTo.Time
	}
	schedule.CreatedAt = createdAt.Time
	schedule.UpdatedAt = updatedAt.Time

	return &schedule, nil
}

// scanSchedules сканирует результаты запроса в слайс расписаний
func scanSchedules(rows *sql.Rows) ([]*domain.Schedule, error) {
	schedules := make([]*domain.Schedule, 0)

	for rows.Next() {
		schedule, err := scanSchedule(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanSchedules - scan row: %v", ErrScanRow, err)
		}
		schedules = append(schedules, schedule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSchedules - rows error: %v", ErrScanRow, err)
	}

	return schedules, nil
}
