package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/HMS-SchedulingService/pkg/ptr"
)

func TestScheduleFilter_Matches(t *testing.T) {
	schedule := &Schedule{
		ID:           1,
		DoctorID:     42,
		DepartmentID: 7,
		DayOfWeek:    Monday,
		Status:       ScheduleActive,
	}

	t.Run("empty filter matches everything", func(t *testing.T) {
		assert.True(t, ScheduleFilter{}.Matches(schedule))
	})

	t.Run("single field filters", func(t *testing.T) {
		assert.True(t, ScheduleFilter{DoctorID: ptr.Ptr(int64(42))}.Matches(schedule))
		assert.False(t, ScheduleFilter{DoctorID: ptr.Ptr(int64(99))}.Matches(schedule))

		day := Monday
		assert.True(t, ScheduleFilter{DayOfWeek: &day}.Matches(schedule))
		friday := Friday
		assert.False(t, ScheduleFilter{DayOfWeek: &friday}.Matches(schedule))
	})

	t.Run("filled fields combine with AND", func(t *testing.T) {
		status := ScheduleActive
		filter := ScheduleFilter{
			DoctorID: ptr.Ptr(int64(42)),
			Status:   &status,
		}
		assert.True(t, filter.Matches(schedule))

		// Одно несовпадение проваливает весь фильтр
		filter.DoctorID = ptr.Ptr(int64(99))
		assert.False(t, filter.Matches(schedule))
	})

	t.Run("exact equality only, no partial match", func(t *testing.T) {
		// ID 4 не должен совпадать с 42
		assert.False(t, ScheduleFilter{DoctorID: ptr.Ptr(int64(4))}.Matches(schedule))
	})
}

func TestScheduleFilter_CountActive(t *testing.T) {
	assert.Equal(t, 0, ScheduleFilter{}.CountActive())

	day := Tuesday
	status := ScheduleInactive
	filter := ScheduleFilter{
		DoctorID:     ptr.Ptr(int64(1)),
		DepartmentID: ptr.Ptr(int64(2)),
		DayOfWeek:    &day,
		Status:       &status,
	}
	assert.Equal(t, 4, filter.CountActive())
}

func TestSchedule_Covers(t *testing.T) {
	validFrom := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)

	t.Run("open-ended validity", func(t *testing.T) {
		s := &Schedule{ValidFrom: validFrom, ValidTo: nil}

		assert.True(t, s.Covers(time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)))
		assert.True(t, s.Covers(time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)))
		assert.False(t, s.Covers(time.Date(2024, 11, 30, 0, 0, 0, 0, time.UTC)))
	})

	t.Run("bounded validity includes both endpoints", func(t *testing.T) {
		validTo := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
		s := &Schedule{ValidFrom: validFrom, ValidTo: &validTo}

		assert.True(t, s.Covers(validFrom))
		assert.True(t, s.Covers(validTo))
		assert.True(t, s.Covers(time.Date(2024, 12, 15, 0, 0, 0, 0, time.UTC)))
		assert.False(t, s.Covers(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
	})

	t.Run("time of day is ignored", func(t *testing.T) {
		validTo := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
		s := &Schedule{ValidFrom: validFrom, ValidTo: &validTo}

		assert.True(t, s.Covers(time.Date(2024, 12, 31, 23, 59, 0, 0, time.UTC)))
	})
}

func TestWeekdayFromTime(t *testing.T) {
	// 2024-12-15 - воскресенье
	assert.Equal(t, Sunday, WeekdayFromTime(time.Date(2024, 12, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, Monday, WeekdayFromTime(time.Date(2024, 12, 16, 0, 0, 0, 0, time.UTC)))
}

func TestWeekday_IsValid(t *testing.T) {
	for _, day := range Weekdays {
		assert.True(t, day.IsValid())
	}
	assert.False(t, Weekday("someday").IsValid())
	assert.False(t, Weekday("").IsValid())
}
