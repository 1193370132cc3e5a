package schedules

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HMS-SchedulingService/internal/domain"
	leaveRepo "github.com/m04kA/HMS-SchedulingService/internal/infra/storage/leave"
	scheduleRepo "github.com/m04kA/HMS-SchedulingService/internal/infra/storage/schedule"
	"github.com/m04kA/HMS-SchedulingService/internal/integrations/staffservice"
	"github.com/m04kA/HMS-SchedulingService/internal/service/schedules/models"
	"github.com/m04kA/HMS-SchedulingService/pkg/ptr"
)

// Фейки зависимостей

type fakeScheduleRepo struct {
	schedules   []*domain.Schedule
	deactivated []int64
	nextID      int64

	lastFilter domain.ScheduleFilter
}

func (f *fakeScheduleRepo) Create(_ context.Context, schedule *domain.Schedule) (*domain.Schedule, error) {
	f.nextID++
	created := *schedule
	created.ID = f.nextID
	f.schedules = append(f.schedules, &created)
	return &created, nil
}

func (f *fakeScheduleRepo) GetByID(_ context.Context, id int64) (*domain.Schedule, error) {
	for _, s := range f.schedules {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, scheduleRepo.ErrScheduleNotFound
}

func (f *fakeScheduleRepo) ListWithFilter(_ context.Context, filter domain.ScheduleFilter) ([]*domain.Schedule, error) {
	f.lastFilter = filter
	var result []*domain.Schedule
	for _, s := range f.schedules {
		if filter.Matches(s) {
			result = append(result, s)
		}
	}
	return result, nil
}

func (f *fakeScheduleRepo) Deactivate(_ context.Context, id int64) error {
	for _, s := range f.schedules {
		if s.ID == id {
			s.Status = domain.ScheduleInactive
			f.deactivated = append(f.deactivated, id)
			return nil
		}
	}
	return scheduleRepo.ErrScheduleNotFound
}

type fakeLeaveRepo struct {
	leaves    []*domain.DoctorLeave
	createErr error
	nextID    int64
}

func (f *fakeLeaveRepo) Create(_ context.Context, leave *domain.DoctorLeave) (*domain.DoctorLeave, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	created := *leave
	created.ID = f.nextID
	created.CreatedAt = time.Now()
	f.leaves = append(f.leaves, &created)
	return &created, nil
}

func (f *fakeLeaveRepo) ListByDoctor(_ context.Context, doctorID int64) ([]*domain.DoctorLeave, error) {
	var result []*domain.DoctorLeave
	for _, l := range f.leaves {
		if l.DoctorID == doctorID {
			result = append(result, l)
		}
	}
	return result, nil
}

type fakeAppointmentRepo struct {
	appointments []*domain.Appointment
}

func (f *fakeAppointmentRepo) GetWithFilter(_ context.Context, _ domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	return f.appointments, nil
}

type fakeStaffClient struct {
	doctor *staffservice.Doctor
}

func (f *fakeStaffClient) GetDoctor(_ context.Context, _ int64) (*staffservice.Doctor, error) {
	if f.doctor == nil {
		return nil, staffservice.ErrDoctorNotFound
	}
	return f.doctor, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testDoctor() *staffservice.Doctor {
	return &staffservice.Doctor{ID: 42, FullName: "Иванов Иван Иванович", DepartmentID: 7, IsActive: true}
}

func newTestService(schedules *fakeScheduleRepo, leaves *fakeLeaveRepo, appts *fakeAppointmentRepo, staff *fakeStaffClient) *Service {
	return NewService(schedules, leaves, appts, staff, nopLogger{})
}

func seedSchedules() *fakeScheduleRepo {
	return &fakeScheduleRepo{
		nextID: 3,
		schedules: []*domain.Schedule{
			{ID: 1, DoctorID: 42, DepartmentID: 7, DayOfWeek: domain.Monday, StartTime: "09:00", EndTime: "17:00",
				ValidFrom: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), Status: domain.ScheduleActive},
			{ID: 2, DoctorID: 42, DepartmentID: 7, DayOfWeek: domain.Friday, StartTime: "09:00", EndTime: "13:00",
				ValidFrom: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), Status: domain.ScheduleInactive},
			{ID: 3, DoctorID: 43, DepartmentID: 8, DayOfWeek: domain.Monday, StartTime: "13:00", EndTime: "17:00",
				ValidFrom: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), Status: domain.ScheduleActive},
		},
	}
}

func TestList_WildcardAndConjunction(t *testing.T) {
	repo := seedSchedules()
	svc := newTestService(repo, &fakeLeaveRepo{}, &fakeAppointmentRepo{}, &fakeStaffClient{doctor: testDoctor()})

	t.Run("empty filter returns the whole registry", func(t *testing.T) {
		resp, err := svc.List(context.Background(), &models.ListSchedulesRequest{})
		require.NoError(t, err)
		assert.Len(t, resp.Schedules, 3)
		assert.Equal(t, 0, resp.ActiveFilters)
	})

	t.Run("all values act as wildcards", func(t *testing.T) {
		resp, err := svc.List(context.Background(), &models.ListSchedulesRequest{DayOfWeek: "all", Status: "all"})
		require.NoError(t, err)
		assert.Len(t, resp.Schedules, 3)
		assert.Equal(t, 0, resp.ActiveFilters)
	})

	t.Run("doctor and status combine with AND", func(t *testing.T) {
		resp, err := svc.List(context.Background(), &models.ListSchedulesRequest{
			DoctorID: ptr.Ptr(int64(42)),
			Status:   "active",
		})
		require.NoError(t, err)
		require.Len(t, resp.Schedules, 1)
		assert.Equal(t, int64(1), resp.Schedules[0].ID)
		assert.Equal(t, 2, resp.ActiveFilters)
	})

	t.Run("invalid filter value", func(t *testing.T) {
		_, err := svc.List(context.Background(), &models.ListSchedulesRequest{DayOfWeek: "someday"})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestCreate(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo := &fakeScheduleRepo{}
		svc := newTestService(repo, &fakeLeaveRepo{}, &fakeAppointmentRepo{}, &fakeStaffClient{doctor: testDoctor()})

		resp, err := svc.Create(context.Background(), &models.CreateScheduleRequest{
			DoctorID:     42,
			DepartmentID: 7,
			DayOfWeek:    "monday",
			StartTime:    "09:00",
			EndTime:      "17:00",
			ValidFrom:    "2026-03-01",
		})
		require.NoError(t, err)
		assert.Equal(t, "active", resp.Status)
		assert.Nil(t, resp.ValidTo)
	})

	t.Run("start must be before end", func(t *testing.T) {
		svc := newTestService(&fakeScheduleRepo{}, &fakeLeaveRepo{}, &fakeAppointmentRepo{}, &fakeStaffClient{doctor: testDoctor()})

		_, err := svc.Create(context.Background(), &models.CreateScheduleRequest{
			DoctorID: 42, DepartmentID: 7, DayOfWeek: "monday",
			StartTime: "17:00", EndTime: "09:00", ValidFrom: "2026-03-01",
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("inverted validity window", func(t *testing.T) {
		svc := newTestService(&fakeScheduleRepo{}, &fakeLeaveRepo{}, &fakeAppointmentRepo{}, &fakeStaffClient{doctor: testDoctor()})

		validTo := "2026-02-01"
		_, err := svc.Create(context.Background(), &models.CreateScheduleRequest{
			DoctorID: 42, DepartmentID: 7, DayOfWeek: "monday",
			StartTime: "09:00", EndTime: "17:00", ValidFrom: "2026-03-01", ValidTo: &validTo,
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("unknown doctor", func(t *testing.T) {
		svc := newTestService(&fakeScheduleRepo{}, &fakeLeaveRepo{}, &fakeAppointmentRepo{}, &fakeStaffClient{})

		_, err := svc.Create(context.Background(), &models.CreateScheduleRequest{
			DoctorID: 99, DepartmentID: 7, DayOfWeek: "monday",
			StartTime: "09:00", EndTime: "17:00", ValidFrom: "2026-03-01",
		})
		assert.ErrorIs(t, err, ErrDoctorNotFound)
	})
}

func TestDeactivate(t *testing.T) {
	repo := seedSchedules()
	svc := newTestService(repo, &fakeLeaveRepo{}, &fakeAppointmentRepo{}, &fakeStaffClient{doctor: testDoctor()})

	resp, err := svc.Deactivate(context.Background(), 1)
	require.NoError(t, err)

	// Мягкое удаление: запись остается в реестре со статусом inactive
	assert.Equal(t, "inactive", resp.Status)
	assert.Equal(t, []int64{1}, repo.deactivated)

	_, err = svc.Deactivate(context.Background(), 99)
	assert.ErrorIs(t, err, ErrScheduleNotFound)
}

func TestMarkLeave(t *testing.T) {
	t.Run("surfaces conflicting appointments", func(t *testing.T) {
		appts := &fakeAppointmentRepo{
			appointments: []*domain.Appointment{
				{ID: 201, DoctorID: 42, Status: domain.StatusScheduled},
				{ID: 202, DoctorID: 42, Status: domain.StatusConfirmed},
			},
		}
		svc := newTestService(&fakeScheduleRepo{}, &fakeLeaveRepo{}, appts, &fakeStaffClient{doctor: testDoctor()})

		resp, err := svc.MarkLeave(context.Background(), 42, &models.MarkLeaveRequest{
			LeaveDate: "2026-03-16",
			Note:      "отпуск",
		})
		require.NoError(t, err)

		assert.Equal(t, "2026-03-16", resp.Leave.LeaveDate)
		assert.ElementsMatch(t, []int64{201, 202}, resp.ConflictingAppointments)
	})

	t.Run("no conflicts on a free day", func(t *testing.T) {
		svc := newTestService(&fakeScheduleRepo{}, &fakeLeaveRepo{}, &fakeAppointmentRepo{}, &fakeStaffClient{doctor: testDoctor()})

		resp, err := svc.MarkLeave(context.Background(), 42, &models.MarkLeaveRequest{LeaveDate: "2026-03-17"})
		require.NoError(t, err)
		assert.Empty(t, resp.ConflictingAppointments)
	})

	t.Run("duplicate leave", func(t *testing.T) {
		leaves := &fakeLeaveRepo{createErr: leaveRepo.ErrLeaveExists}
		svc := newTestService(&fakeScheduleRepo{}, leaves, &fakeAppointmentRepo{}, &fakeStaffClient{doctor: testDoctor()})

		_, err := svc.MarkLeave(context.Background(), 42, &models.MarkLeaveRequest{LeaveDate: "2026-03-16"})
		assert.ErrorIs(t, err, ErrLeaveExists)
	})

	t.Run("validation", func(t *testing.T) {
		svc := newTestService(&fakeScheduleRepo{}, &fakeLeaveRepo{}, &fakeAppointmentRepo{}, &fakeStaffClient{doctor: testDoctor()})

		_, err := svc.MarkLeave(context.Background(), 42, &models.MarkLeaveRequest{LeaveDate: ""})
		assert.ErrorIs(t, err, ErrInvalidInput)

		_, err = svc.MarkLeave(context.Background(), 42, &models.MarkLeaveRequest{LeaveDate: "16.03.2026"})
		assert.ErrorIs(t, err, ErrInvalidInput)

		_, err = svc.MarkLeave(context.Background(), 0, &models.MarkLeaveRequest{LeaveDate: "2026-03-16"})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestListLeaves(t *testing.T) {
	leaves := &fakeLeaveRepo{
		leaves: []*domain.DoctorLeave{
			{ID: 1, DoctorID: 42, LeaveDate: time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)},
			{ID: 2, DoctorID: 43, LeaveDate: time.Date(2026, 3, 17, 0, 0, 0, 0, time.UTC)},
		},
	}
	svc := newTestService(&fakeScheduleRepo{}, leaves, &fakeAppointmentRepo{}, &fakeStaffClient{doctor: testDoctor()})

	resp, err := svc.ListLeaves(context.Background(), 42)
	require.NoError(t, err)
	require.Len(t, resp.Leaves, 1)
	assert.Equal(t, "2026-03-16", resp.Leaves[0].LeaveDate)
}
