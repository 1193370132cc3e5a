package domain

import (
	"time"

	"github.com/m04kA/HMS-SchedulingService/pkg/types"
)

// ScheduleStatus represents the status of a recurring schedule
type ScheduleStatus string

const (
	ScheduleActive   ScheduleStatus = "active"
	ScheduleInactive ScheduleStatus = "inactive"
)

// Weekday day-of-week enum used by schedules and filters
type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
	Sunday    Weekday = "sunday"
)

// Weekdays все дни недели в порядке следования
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// IsValid returns true if the weekday is one of the known values
func (w Weekday) IsValid() bool {
	for _, d := range Weekdays {
		if d == w {
			return true
		}
	}
	return false
}

// WeekdayFromTime converts a calendar date to its Weekday
func WeekdayFromTime(t time.Time) Weekday {
	switch t.Weekday() {
	case time.Monday:
		return Monday
	case time.Tuesday:
		return Tuesday
	case time.Wednesday:
		return Wednesday
	case time.Thursday:
		return Thursday
	case time.Friday:
		return Friday
	case time.Saturday:
		return Saturday
	default:
		return Sunday
	}
}

// Schedule represents a doctor's recurring weekly availability definition.
// Расписания никогда не удаляются физически, только деактивируются.
type Schedule struct {
	ID           int64
	DoctorID     int64
	DepartmentID int64
	DayOfWeek    Weekday
	StartTime    types.TimeString
	EndTime      types.TimeString
	ValidFrom    time.Time
	ValidTo      *time.Time // nil = открытый верхний предел ("always")
	Status       ScheduleStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsActive returns true if the schedule is active
func (s *Schedule) IsActive() bool {
	return s.Status == ScheduleActive
}

// Covers returns true if the validity window contains the given date
// (day granularity, validTo = nil treated as open-ended)
func (s *Schedule) Covers(date time.Time) bool {
	day := DateOnly(date)
	if day.Before(DateOnly(s.ValidFrom)) {
		return false
	}
	if s.ValidTo != nil && day.After(DateOnly(*s.ValidTo)) {
		return false
	}
	return true
}

// ScheduleFilter фильтр реестра расписаний.
// nil-поле означает wildcard "all" - поле не участвует в отборе.
type ScheduleFilter struct {
	DoctorID     *int64
	DepartmentID *int64
	DayOfWeek    *Weekday
	Status       *ScheduleStatus
}

// CountActive возвращает количество заполненных (не-wildcard) полей фильтра.
// Используется только для логирования и обратной связи в UI.
func (f ScheduleFilter) CountActive() int {
	count := 0
	if f.DoctorID != nil {
		count++
	}
	if f.DepartmentID != nil {
		count++
	}
	if f.DayOfWeek != nil {
		count++
	}
	if f.Status != nil {
		count++
	}
	return count
}

// Matches returns true if the schedule satisfies every non-wildcard filter field.
// Сопоставление только по точному равенству, без частичных совпадений.
func (f ScheduleFilter) Matches(s *Schedule) bool {
	if f.DoctorID != nil && s.DoctorID != *f.DoctorID {
		return false
	}
	if f.DepartmentID != nil && s.DepartmentID != *f.DepartmentID {
		return false
	}
	if f.DayOfWeek != nil && s.DayOfWeek != *f.DayOfWeek {
		return false
	}
	if f.Status != nil && s.Status != *f.Status {
		return false
	}
	return true
}

// DateOnly обнуляет время, оставляя только календарную дату
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
