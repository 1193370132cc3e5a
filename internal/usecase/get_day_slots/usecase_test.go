package get_day_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HMS-SchedulingService/internal/domain"
	leaveRepo "github.com/m04kA/HMS-SchedulingService/internal/infra/storage/leave"
	"github.com/m04kA/HMS-SchedulingService/internal/integrations/staffservice"
)

// Фейки зависимостей

type fakeAppointmentRepo struct {
	appointments []*domain.Appointment
	err          error
}

func (f *fakeAppointmentRepo) GetWithFilter(_ context.Context, _ domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	return f.appointments, f.err
}

type fakeLeaveRepo struct {
	leave *domain.DoctorLeave
}

func (f *fakeLeaveRepo) GetByDoctorAndDate(_ context.Context, _ int64, _ time.Time) (*domain.DoctorLeave, error) {
	if f.leave == nil {
		return nil, leaveRepo.ErrLeaveNotFound
	}
	return f.leave, nil
}

type fakeStaffClient struct {
	doctor *staffservice.Doctor
}

func (f *fakeStaffClient) GetDoctor(_ context.Context, doctorID int64) (*staffservice.Doctor, error) {
	if f.doctor == nil {
		return nil, staffservice.ErrDoctorNotFound
	}
	return f.doctor, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestUseCase(appts *fakeAppointmentRepo, leaves *fakeLeaveRepo, staff *fakeStaffClient) *UseCase {
	return NewUseCase(appts, leaves, staff, nopLogger{})
}

func testDoctor() *staffservice.Doctor {
	return &staffservice.Doctor{ID: 42, FullName: "Иванов Иван Иванович", DepartmentID: 7, IsActive: true}
}

func testDate() time.Time {
	return time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)
}

func TestExecute_EmptyDayGrid(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeLeaveRepo{}, &fakeStaffClient{doctor: testDoctor()})

	resp, err := uc.Execute(context.Background(), &Request{DoctorID: 42, Date: testDate()})
	require.NoError(t, err)

	// Ровно 16 слотов по 30 минут, 09:00-17:00
	require.Len(t, resp.Slots, domain.SlotsPerDay)
	assert.False(t, resp.OnLeave)

	assert.Equal(t, "09:00", resp.Slots[0].StartTime.String())
	assert.Equal(t, "16:30", resp.Slots[len(resp.Slots)-1].StartTime.String())

	for i, slot := range resp.Slots {
		assert.Equal(t, domain.SlotDurationMinutes, slot.DurationMinutes)
		assert.True(t, slot.Available, "slot %d must be available on an empty day", i)
		assert.Nil(t, slot.AppointmentID)

		// Слоты идут с шагом 30 минут без пропусков
		if i > 0 {
			minutes, err := resp.Slots[i-1].StartTime.MinutesBetween(slot.StartTime)
			require.NoError(t, err)
			assert.Equal(t, domain.SlotDurationMinutes, minutes)
		}
	}
}

func TestExecute_GridIsDeterministic(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeLeaveRepo{}, &fakeStaffClient{doctor: testDoctor()})

	first, err := uc.Execute(context.Background(), &Request{DoctorID: 42, Date: testDate()})
	require.NoError(t, err)
	second, err := uc.Execute(context.Background(), &Request{DoctorID: 42, Date: testDate()})
	require.NoError(t, err)

	assert.Equal(t, first.Slots, second.Slots)
}

func TestExecute_BookedSlotUnavailable(t *testing.T) {
	appts := &fakeAppointmentRepo{
		appointments: []*domain.Appointment{
			{ID: 101, DoctorID: 42, StartTime: "09:00", DurationMinutes: 30, Status: domain.StatusScheduled},
		},
	}
	uc := newTestUseCase(appts, &fakeLeaveRepo{}, &fakeStaffClient{doctor: testDoctor()})

	resp, err := uc.Execute(context.Background(), &Request{DoctorID: 42, Date: testDate()})
	require.NoError(t, err)
	require.Len(t, resp.Slots, domain.SlotsPerDay)

	// Занятый слот недоступен и несет ID занявшей его записи
	assert.False(t, resp.Slots[0].Available)
	require.NotNil(t, resp.Slots[0].AppointmentID)
	assert.Equal(t, int64(101), *resp.Slots[0].AppointmentID)

	// Остальные слоты свободны
	for _, slot := range resp.Slots[1:] {
		assert.True(t, slot.Available)
	}
}

func TestExecute_LongAppointmentCoversMultipleSlots(t *testing.T) {
	appts := &fakeAppointmentRepo{
		appointments: []*domain.Appointment{
			{ID: 55, DoctorID: 42, StartTime: "10:00", DurationMinutes: 90, Status: domain.StatusConfirmed},
		},
	}
	uc := newTestUseCase(appts, &fakeLeaveRepo{}, &fakeStaffClient{doctor: testDoctor()})

	resp, err := uc.Execute(context.Background(), &Request{DoctorID: 42, Date: testDate()})
	require.NoError(t, err)

	for _, slot := range resp.Slots {
		switch slot.StartTime.String() {
		case "10:00", "10:30", "11:00":
			assert.False(t, slot.Available, "slot %s overlaps the appointment", slot.StartTime)
		default:
			assert.True(t, slot.Available, "slot %s must stay free", slot.StartTime)
		}
	}

	// Граничащий слот 11:30 не пересекается с записью 10:00-11:30
	for _, slot := range resp.Slots {
		if slot.StartTime.String() == "11:30" {
			assert.True(t, slot.Available)
		}
	}
}

func TestExecute_CancelledAppointmentFreesSlot(t *testing.T) {
	appts := &fakeAppointmentRepo{
		appointments: []*domain.Appointment{
			{ID: 9, DoctorID: 42, StartTime: "09:00", DurationMinutes: 30, Status: domain.StatusCancelled},
		},
	}
	uc := newTestUseCase(appts, &fakeLeaveRepo{}, &fakeStaffClient{doctor: testDoctor()})

	resp, err := uc.Execute(context.Background(), &Request{DoctorID: 42, Date: testDate()})
	require.NoError(t, err)

	assert.True(t, resp.Slots[0].Available)
	assert.Nil(t, resp.Slots[0].AppointmentID)
}

func TestExecute_DoctorOnLeave(t *testing.T) {
	leaves := &fakeLeaveRepo{
		leave: &domain.DoctorLeave{ID: 1, DoctorID: 42, LeaveDate: testDate()},
	}
	uc := newTestUseCase(&fakeAppointmentRepo{}, leaves, &fakeStaffClient{doctor: testDoctor()})

	resp, err := uc.Execute(context.Background(), &Request{DoctorID: 42, Date: testDate()})
	require.NoError(t, err)

	assert.True(t, resp.OnLeave)
	require.Len(t, resp.Slots, domain.SlotsPerDay)
	for _, slot := range resp.Slots {
		assert.False(t, slot.Available)
	}
}

func TestExecute_DoctorNotFound(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeLeaveRepo{}, &fakeStaffClient{})

	_, err := uc.Execute(context.Background(), &Request{DoctorID: 99, Date: testDate()})
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeLeaveRepo{}, &fakeStaffClient{doctor: testDoctor()})

	_, err := uc.Execute(context.Background(), &Request{DoctorID: 0, Date: testDate()})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{DoctorID: 42})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
