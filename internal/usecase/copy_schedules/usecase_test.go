package copy_schedules

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HMS-SchedulingService/internal/domain"
)

// Фейки зависимостей

type fakeScheduleRepo struct {
	// Расписания, возвращаемые ListActiveCovering
	active []*domain.Schedule

	created []*domain.Schedule
	nextID  int64

	requestedDate time.Time
}

func (f *fakeScheduleRepo) ListActiveCovering(_ context.Context, date time.Time) ([]*domain.Schedule, error) {
	f.requestedDate = date
	return f.active, nil
}

func (f *fakeScheduleRepo) Create(_ context.Context, schedule *domain.Schedule) (*domain.Schedule, error) {
	f.nextID++
	created := *schedule
	created.ID = f.nextID
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	f.created = append(f.created, &created)
	return &created, nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTimeProvider struct {
	now time.Time
}

func (p fixedTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestUseCase(repo *fakeScheduleRepo, now time.Time) *UseCase {
	uc := NewUseCase(repo, fakeTxManager{}, nopLogger{})
	uc.timeProvider = fixedTimeProvider{now: now}
	return uc
}

func TestExecute_CopiesEligibleSchedules(t *testing.T) {
	// Сегодня 2024-12-15, исходная дата 2024-12-08
	now := time.Date(2024, 12, 15, 14, 30, 0, 0, time.UTC)
	validTo := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	repo := &fakeScheduleRepo{
		active: []*domain.Schedule{
			{
				ID:           10,
				DoctorID:     42,
				DepartmentID: 7,
				DayOfWeek:    domain.Monday,
				StartTime:    "09:00",
				EndTime:      "17:00",
				ValidFrom:    time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC),
				ValidTo:      nil,
				Status:       domain.ScheduleActive,
			},
			{
				ID:           11,
				DoctorID:     43,
				DepartmentID: 7,
				DayOfWeek:    domain.Friday,
				StartTime:    "10:00",
				EndTime:      "14:00",
				ValidFrom:    time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC),
				ValidTo:      &validTo,
				Status:       domain.ScheduleActive,
			},
		},
	}

	uc := newTestUseCase(repo, now)
	resp, err := uc.Execute(context.Background())
	require.NoError(t, err)

	// Исходная дата ровно на неделю раньше сегодняшней
	assert.Equal(t, time.Date(2024, 12, 8, 0, 0, 0, 0, time.UTC), repo.requestedDate)
	assert.Equal(t, time.Date(2024, 12, 8, 0, 0, 0, 0, time.UTC), resp.SourceDate)
	assert.Equal(t, time.Date(2024, 12, 15, 0, 0, 0, 0, time.UTC), resp.TargetDate)

	require.Equal(t, 2, resp.Copied)
	require.Len(t, resp.Schedules, 2)

	first := resp.Schedules[0]

	// Копия получает новый ID из хранилища
	assert.NotEqual(t, int64(10), first.ID)

	// valid_from копии - сегодняшняя дата без времени
	assert.Equal(t, time.Date(2024, 12, 15, 0, 0, 0, 0, time.UTC), first.ValidFrom)

	// Остальные поля переносятся без изменений
	assert.Equal(t, int64(42), first.DoctorID)
	assert.Equal(t, domain.Monday, first.DayOfWeek)
	assert.Equal(t, "09:00", first.StartTime.String())
	assert.Equal(t, "17:00", first.EndTime.String())
	assert.Nil(t, first.ValidTo)
	assert.Equal(t, domain.ScheduleActive, first.Status)

	second := resp.Schedules[1]
	require.NotNil(t, second.ValidTo)
	assert.Equal(t, validTo, *second.ValidTo)
}

func TestExecute_ExpiredWindowSkipped(t *testing.T) {
	// Расписание действовало неделю назад, но его окно закрылось вчера:
	// копия с valid_from=сегодня нарушила бы инвариант valid_from <= valid_to
	now := time.Date(2024, 12, 15, 10, 0, 0, 0, time.UTC)
	expiredTo := time.Date(2024, 12, 14, 0, 0, 0, 0, time.UTC)

	repo := &fakeScheduleRepo{
		active: []*domain.Schedule{
			{
				ID:        20,
				DoctorID:  42,
				DayOfWeek: domain.Monday,
				StartTime: "09:00",
				EndTime:   "17:00",
				ValidFrom: time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC),
				ValidTo:   &expiredTo,
				Status:    domain.ScheduleActive,
			},
			{
				ID:        21,
				DoctorID:  43,
				DayOfWeek: domain.Tuesday,
				StartTime: "09:00",
				EndTime:   "13:00",
				ValidFrom: time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC),
				ValidTo:   nil,
				Status:    domain.ScheduleActive,
			},
		},
	}

	uc := newTestUseCase(repo, now)
	resp, err := uc.Execute(context.Background())
	require.NoError(t, err)

	// Истекшее расписание пропущено, остальная часть пакета скопирована
	require.Equal(t, 1, resp.Copied)
	require.Len(t, resp.Schedules, 1)
	assert.Equal(t, int64(43), resp.Schedules[0].DoctorID)

	// Ни одна копия не выходит за свое окно действия
	for _, schedule := range resp.Schedules {
		if schedule.ValidTo != nil {
			assert.False(t, schedule.ValidTo.Before(schedule.ValidFrom))
		}
	}
}

func TestExecute_NothingToCopy(t *testing.T) {
	now := time.Date(2024, 12, 15, 9, 0, 0, 0, time.UTC)
	repo := &fakeScheduleRepo{}

	uc := newTestUseCase(repo, now)
	resp, err := uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, resp.Copied)
	assert.Empty(t, resp.Schedules)
	assert.Empty(t, repo.created)
}

func TestExecute_CopiedCountMatchesCreated(t *testing.T) {
	now := time.Date(2025, 1, 20, 8, 0, 0, 0, time.UTC)
	repo := &fakeScheduleRepo{
		active: []*domain.Schedule{
			{ID: 1, DoctorID: 1, DayOfWeek: domain.Monday, StartTime: "09:00", EndTime: "13:00",
				ValidFrom: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), Status: domain.ScheduleActive},
			{ID: 2, DoctorID: 2, DayOfWeek: domain.Tuesday, StartTime: "13:00", EndTime: "17:00",
				ValidFrom: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), Status: domain.ScheduleActive},
			{ID: 3, DoctorID: 3, DayOfWeek: domain.Wednesday, StartTime: "09:00", EndTime: "17:00",
				ValidFrom: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), Status: domain.ScheduleActive},
		},
	}

	uc := newTestUseCase(repo, now)
	resp, err := uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, resp.Copied)
	assert.Len(t, repo.created, 3)
}
