package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HMS-SchedulingService/internal/domain"
	appointmentRepo "github.com/m04kA/HMS-SchedulingService/internal/infra/storage/appointment"
	"github.com/m04kA/HMS-SchedulingService/internal/service/appointments/models"
)

// Фейк репозитория записей

type fakeAppointmentRepo struct {
	byID map[int64]*domain.Appointment

	updatedStatus *domain.AppointmentStatus
	cancelled     bool
	cancelReason  string
}

func newFakeRepo(appts ...*domain.Appointment) *fakeAppointmentRepo {
	byID := make(map[int64]*domain.Appointment, len(appts))
	for _, a := range appts {
		byID[a.ID] = a
	}
	return &fakeAppointmentRepo{byID: byID}
}

func (f *fakeAppointmentRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	appt, ok := f.byID[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	return appt, nil
}

func (f *fakeAppointmentRepo) GetWithFilter(_ context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	var result []*domain.Appointment
	for _, a := range f.byID {
		if filter.DoctorID != nil && a.DoctorID != *filter.DoctorID {
			continue
		}
		if !filter.IncludeCancelled && filter.Status == nil && a.IsCancelled() {
			continue
		}
		result = append(result, a)
	}
	return result, nil
}

func (f *fakeAppointmentRepo) UpdateStatus(_ context.Context, id int64, status domain.AppointmentStatus) error {
	if _, ok := f.byID[id]; !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	f.updatedStatus = &status
	return nil
}

func (f *fakeAppointmentRepo) Cancel(_ context.Context, id int64, reason string) error {
	if _, ok := f.byID[id]; !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	f.cancelled = true
	f.cancelReason = reason
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testAppointment(id int64, status domain.AppointmentStatus) *domain.Appointment {
	return &domain.Appointment{
		ID:              id,
		PatientID:       500,
		DoctorID:        42,
		DepartmentID:    7,
		AppointmentDate: time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC),
		StartTime:       "09:30",
		DurationMinutes: 30,
		Type:            domain.TypeConsultation,
		Status:          status,
		Priority:        domain.PriorityMedium,
	}
}

func TestGetByID(t *testing.T) {
	repo := newFakeRepo(testAppointment(1, domain.StatusScheduled))
	svc := NewService(repo, nopLogger{})

	resp, err := svc.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "09:30", resp.StartTime)
	assert.Equal(t, "10:00", resp.EndTime)

	_, err = svc.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestUpdateStatus_AllowedTransitions(t *testing.T) {
	tests := []struct {
		name string
		from domain.AppointmentStatus
		to   string
	}{
		{"scheduled to confirmed", domain.StatusScheduled, "confirmed"},
		{"confirmed to in-progress", domain.StatusConfirmed, "in-progress"},
		{"in-progress to completed", domain.StatusInProgress, "completed"},
		{"scheduled to no-show", domain.StatusScheduled, "no-show"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepo(testAppointment(1, tt.from))
			svc := NewService(repo, nopLogger{})

			resp, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: tt.to})
			require.NoError(t, err)
			assert.Equal(t, tt.to, resp.Status)
			require.NotNil(t, repo.updatedStatus)
			assert.Equal(t, domain.AppointmentStatus(tt.to), *repo.updatedStatus)
		})
	}
}

func TestUpdateStatus_RejectedTransitions(t *testing.T) {
	tests := []struct {
		name string
		from domain.AppointmentStatus
		to   string
	}{
		{"scheduled skips to in-progress", domain.StatusScheduled, "in-progress"},
		{"scheduled skips to completed", domain.StatusScheduled, "completed"},
		{"completed is terminal", domain.StatusCompleted, "confirmed"},
		{"cancelled is terminal", domain.StatusCancelled, "scheduled"},
		{"no-show is terminal", domain.StatusNoShow, "confirmed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepo(testAppointment(1, tt.from))
			svc := NewService(repo, nopLogger{})

			_, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: tt.to})
			assert.ErrorIs(t, err, ErrInvalidTransition)
			assert.Nil(t, repo.updatedStatus)
		})
	}
}

func TestUpdateStatus_UnknownStatus(t *testing.T) {
	repo := newFakeRepo(testAppointment(1, domain.StatusScheduled))
	svc := NewService(repo, nopLogger{})

	_, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "archived"})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestCancel(t *testing.T) {
	t.Run("cancels non-terminal appointment", func(t *testing.T) {
		repo := newFakeRepo(testAppointment(1, domain.StatusConfirmed))
		svc := NewService(repo, nopLogger{})

		err := svc.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{CancellationReason: "пациент попросил перенести"})
		require.NoError(t, err)
		assert.True(t, repo.cancelled)
		assert.Equal(t, "пациент попросил перенести", repo.cancelReason)
	})

	t.Run("rejects terminal statuses", func(t *testing.T) {
		for _, status := range []domain.AppointmentStatus{domain.StatusCompleted, domain.StatusCancelled, domain.StatusNoShow} {
			repo := newFakeRepo(testAppointment(1, status))
			svc := NewService(repo, nopLogger{})

			err := svc.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{})
			assert.ErrorIs(t, err, ErrCannotCancel, "status %s", status)
			assert.False(t, repo.cancelled)
		}
	})

	t.Run("not found", func(t *testing.T) {
		repo := newFakeRepo()
		svc := NewService(repo, nopLogger{})

		err := svc.Cancel(context.Background(), 99, &models.CancelAppointmentRequest{})
		assert.ErrorIs(t, err, ErrAppointmentNotFound)
	})
}

func TestGetDoctorDay_Validation(t *testing.T) {
	svc := NewService(newFakeRepo(), nopLogger{})

	_, err := svc.GetDoctorDay(context.Background(), 0, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
