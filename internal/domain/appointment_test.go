package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppointmentStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    AppointmentStatus
		to      AppointmentStatus
		allowed bool
	}{
		{"scheduled to confirmed", StatusScheduled, StatusConfirmed, true},
		{"scheduled to cancelled", StatusScheduled, StatusCancelled, true},
		{"scheduled to no-show", StatusScheduled, StatusNoShow, true},
		{"scheduled to in-progress skips confirmation", StatusScheduled, StatusInProgress, false},
		{"scheduled to completed skips steps", StatusScheduled, StatusCompleted, false},

		{"confirmed to in-progress", StatusConfirmed, StatusInProgress, true},
		{"confirmed to cancelled", StatusConfirmed, StatusCancelled, true},
		{"confirmed to no-show", StatusConfirmed, StatusNoShow, true},
		{"confirmed back to scheduled", StatusConfirmed, StatusScheduled, false},

		{"in-progress to completed", StatusInProgress, StatusCompleted, true},
		{"in-progress to cancelled", StatusInProgress, StatusCancelled, true},
		{"in-progress to no-show", StatusInProgress, StatusNoShow, true},
		{"in-progress back to confirmed", StatusInProgress, StatusConfirmed, false},

		{"completed is terminal", StatusCompleted, StatusCancelled, false},
		{"cancelled is terminal", StatusCancelled, StatusScheduled, false},
		{"no-show is terminal", StatusNoShow, StatusConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestAppointmentStatus_IsTerminal(t *testing.T) {
	assert.False(t, StatusScheduled.IsTerminal())
	assert.False(t, StatusConfirmed.IsTerminal())
	assert.False(t, StatusInProgress.IsTerminal())
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.True(t, StatusNoShow.IsTerminal())
}

func TestAppointment_BlocksSlot(t *testing.T) {
	// Слот освобождает только отмена
	for _, status := range []AppointmentStatus{StatusScheduled, StatusConfirmed, StatusInProgress, StatusCompleted, StatusNoShow} {
		appt := &Appointment{Status: status}
		assert.True(t, appt.BlocksSlot(), "status %s must block its slot", status)
	}

	cancelled := &Appointment{Status: StatusCancelled}
	assert.False(t, cancelled.BlocksSlot())
}

func TestAppointment_CanBeCancelled(t *testing.T) {
	assert.True(t, (&Appointment{Status: StatusScheduled}).CanBeCancelled())
	assert.True(t, (&Appointment{Status: StatusConfirmed}).CanBeCancelled())
	assert.True(t, (&Appointment{Status: StatusInProgress}).CanBeCancelled())
	assert.False(t, (&Appointment{Status: StatusCompleted}).CanBeCancelled())
	assert.False(t, (&Appointment{Status: StatusCancelled}).CanBeCancelled())
	assert.False(t, (&Appointment{Status: StatusNoShow}).CanBeCancelled())
}

func TestAppointment_EndTime(t *testing.T) {
	appt := &Appointment{StartTime: "09:30", DurationMinutes: 30}
	endTime, err := appt.EndTime()
	assert.NoError(t, err)
	assert.Equal(t, "10:00", endTime.String())
}
