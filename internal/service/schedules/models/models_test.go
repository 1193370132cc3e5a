package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HMS-SchedulingService/internal/domain"
	"github.com/m04kA/HMS-SchedulingService/pkg/ptr"
)

func TestListSchedulesRequest_ToDomainFilter(t *testing.T) {
	t.Run("empty request is a full wildcard", func(t *testing.T) {
		filter, err := (&ListSchedulesRequest{}).ToDomainFilter()
		require.NoError(t, err)
		assert.Equal(t, 0, filter.CountActive())
	})

	t.Run("explicit all is equivalent to absence", func(t *testing.T) {
		req := &ListSchedulesRequest{DayOfWeek: Wildcard, Status: Wildcard}
		filter, err := req.ToDomainFilter()
		require.NoError(t, err)
		assert.Nil(t, filter.DayOfWeek)
		assert.Nil(t, filter.Status)
	})

	t.Run("filled fields are converted", func(t *testing.T) {
		req := &ListSchedulesRequest{
			DoctorID:  ptr.Ptr(int64(42)),
			DayOfWeek: "monday",
			Status:    "active",
		}
		filter, err := req.ToDomainFilter()
		require.NoError(t, err)

		assert.Equal(t, 3, filter.CountActive())
		require.NotNil(t, filter.DayOfWeek)
		assert.Equal(t, domain.Monday, *filter.DayOfWeek)
		require.NotNil(t, filter.Status)
		assert.Equal(t, domain.ScheduleActive, *filter.Status)
	})

	t.Run("invalid day of week", func(t *testing.T) {
		_, err := (&ListSchedulesRequest{DayOfWeek: "someday"}).ToDomainFilter()
		assert.ErrorIs(t, err, ErrInvalidDayOfWeek)
	})

	t.Run("invalid status", func(t *testing.T) {
		_, err := (&ListSchedulesRequest{Status: "archived"}).ToDomainFilter()
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})
}

func TestCreateScheduleRequest_ToDomainSchedule(t *testing.T) {
	t.Run("open-ended validity", func(t *testing.T) {
		req := &CreateScheduleRequest{
			DoctorID:     42,
			DepartmentID: 7,
			DayOfWeek:    "monday",
			StartTime:    "09:00",
			EndTime:      "17:00",
			ValidFrom:    "2026-03-01",
		}

		schedule, err := req.ToDomainSchedule()
		require.NoError(t, err)

		assert.Equal(t, domain.Monday, schedule.DayOfWeek)
		assert.Equal(t, "09:00", schedule.StartTime.String())
		assert.Nil(t, schedule.ValidTo)
		assert.Equal(t, domain.ScheduleActive, schedule.Status)
	})

	t.Run("bounded validity", func(t *testing.T) {
		validTo := "2026-06-30"
		req := &CreateScheduleRequest{
			DoctorID:     42,
			DepartmentID: 7,
			DayOfWeek:    "friday",
			StartTime:    "10:00",
			EndTime:      "14:00",
			ValidFrom:    "2026-03-01",
			ValidTo:      &validTo,
		}

		schedule, err := req.ToDomainSchedule()
		require.NoError(t, err)
		require.NotNil(t, schedule.ValidTo)
		assert.Equal(t, "2026-06-30", schedule.ValidTo.Format(domain.DateFormat))
	})

	t.Run("invalid inputs", func(t *testing.T) {
		base := CreateScheduleRequest{
			DoctorID: 42, DepartmentID: 7,
			DayOfWeek: "monday", StartTime: "09:00", EndTime: "17:00", ValidFrom: "2026-03-01",
		}

		bad := base
		bad.DayOfWeek = "someday"
		_, err := bad.ToDomainSchedule()
		assert.ErrorIs(t, err, ErrInvalidDayOfWeek)

		bad = base
		bad.StartTime = "9am"
		_, err = bad.ToDomainSchedule()
		assert.Error(t, err)

		bad = base
		bad.ValidFrom = "01.03.2026"
		_, err = bad.ToDomainSchedule()
		assert.Error(t, err)
	})
}

func TestFromDomainSchedule(t *testing.T) {
	assert.Nil(t, FromDomainSchedule(nil))
}
