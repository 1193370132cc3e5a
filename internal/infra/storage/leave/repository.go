package leave

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/HMS-SchedulingService/internal/domain"
	"github.com/m04kA/HMS-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/HMS-SchedulingService/pkg/psqlbuilder"
)

// uniqueViolation код ошибки PostgreSQL для нарушения уникального индекса
const uniqueViolation = "23505"

// DBExecutor интерфейс выполнения запросов (переиспользуем из dbmetrics)
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий для работы с отпусками/исключениями врачей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория отпусков
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create записывает отметку об отпуске.
// Уникальный индекс (doctor_id, leave_date) не допускает дубликатов.
func (r *Repository) Create(ctx context.Context, leave *domain.DoctorLeave) (*domain.DoctorLeave, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("doctor_leaves").
		Columns(
			"doctor_id",
			"leave_date",
			"note",
		).
		Values(
			leave.DoctorID,
			leave.LeaveDate,
			leave.Note,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&leave.ID,
		&createdAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, ErrLeaveExists
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	leave.CreatedAt = createdAt.Time

	return leave, nil
}

// GetByDoctorAndDate получает отметку об отпуске врача на конкретную дату
func (r *Repository) GetByDoctorAndDate(ctx context.Context, doctorID int64, date time.Time) (*domain.DoctorLeave, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"doctor_id",
		"leave_date",
		"note",
		"created_at",
	).
		From("doctor_leaves").
		Where(squirrel.Eq{
			"doctor_id":  doctorID,
			"leave_date": domain.DateOnly(date),
		}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByDoctorAndDate - build select query: %v", ErrBuildQuery, err)
	}

	var leave domain.DoctorLeave
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&leave.ID,
		&leave.DoctorID,
		&leave.LeaveDate,
		&leave.Note,
		&createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrLeaveNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDoctorAndDate - scan leave: %v", ErrScanRow, err)
	}

	leave.CreatedAt = createdAt.Time

	return &leave, nil
}

// ListByDoctor получает все отметки об отпусках врача (сначала ближайшие)
func (r *Repository) ListByDoctor(ctx context.Context, doctorID int64) ([]*domain.DoctorLeave, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"doctor_id",
		"leave_date",
		"note",
		"created_at",
	).
		From("doctor_leaves").
		Where(squirrel.Eq{"doctor_id": doctorID}).
		OrderBy("leave_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByDoctor - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDoctor - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	leaves := make([]*domain.DoctorLeave, 0)

	for rows.Next() {
		var leave domain.DoctorLeave
		var createdAt sql.NullTime

		err := rows.Scan(
			&leave.ID,
			&leave.DoctorID,
			&leave.LeaveDate,
			&leave.Note,
			&createdAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: ListByDoctor - scan row: %v", ErrScanRow, err)
		}

		leave.CreatedAt = createdAt.Time
		leaves = append(leaves, &leave)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByDoctor - rows error: %v", ErrScanRow, err)
	}

	return leaves, nil
}
