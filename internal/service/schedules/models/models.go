package models

import (
	"errors"
	"time"

	"github.com/m04kA/HMS-SchedulingService/internal/domain"
	"github.com/m04kA/HMS-SchedulingService/pkg/types"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе расписания
	ErrInvalidStatus = errors.New("invalid schedule status")

	// ErrInvalidDayOfWeek возвращается при некорректном дне недели
	ErrInvalidDayOfWeek = errors.New("invalid day of week")
)

// Wildcard значение "all" снимает фильтрацию по полю
const Wildcard = "all"

// Request модели

// ListSchedulesRequest запрос на получение расписаний с фильтрацией.
// Пустое значение или "all" в любом поле означает wildcard.
type ListSchedulesRequest struct {
	DoctorID     *int64 `json:"doctorId,omitempty"`
	DepartmentID *int64 `json:"departmentId,omitempty"`
	DayOfWeek    string `json:"dayOfWeek,omitempty"`
	Status       string `json:"status,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр.
// "all" и пустые строки превращаются в nil (wildcard).
func (r *ListSchedulesRequest) ToDomainFilter() (domain.ScheduleFilter, error) {
	filter := domain.ScheduleFilter{
		DoctorID:     r.DoctorID,
		DepartmentID: r.DepartmentID,
	}

	if r.DayOfWeek != "" && r.DayOfWeek != Wildcard {
		day := domain.Weekday(r.DayOfWeek)
		if !day.IsValid() {
			return filter, ErrInvalidDayOfWeek
		}
		filter.DayOfWeek = &day
	}

	if r.Status != "" && r.Status != Wildcard {
		status, err := ToDomainScheduleStatus(r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// CreateScheduleRequest запрос на создание расписания
type CreateScheduleRequest struct {
	DoctorID     int64   `json:"doctorId"`
	DepartmentID int64   `json:"departmentId"`
	DayOfWeek    string  `json:"dayOfWeek"`
	StartTime    string  `json:"startTime"` // "09:00"
	EndTime      string  `json:"endTime"`   // "17:00"
	ValidFrom    string  `json:"validFrom"` // "2026-03-01"
	ValidTo      *string `json:"validTo,omitempty"`
}

// MarkLeaveRequest запрос на отметку отпуска врача
type MarkLeaveRequest struct {
	LeaveDate string `json:"leaveDate"` // "2026-03-15"
	Note      string `json:"note,omitempty"`
}

// Response модели

// ScheduleResponse ответ с данными расписания
type ScheduleResponse struct {
	ID           int64   `json:"id"`
	DoctorID     int64   `json:"doctorId"`
	DepartmentID int64   `json:"departmentId"`
	DayOfWeek    string  `json:"dayOfWeek"`
	StartTime    string  `json:"startTime"`
	EndTime      string  `json:"endTime"`
	ValidFrom    string  `json:"validFrom"`
	ValidTo      *string `json:"validTo,omitempty"` // отсутствует = бессрочно
	Status       string  `json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ScheduleListResponse ответ со списком расписаний
type ScheduleListResponse struct {
	Schedules     []ScheduleResponse `json:"schedules"`
	ActiveFilters int                `json:"activeFilters"` // Количество не-wildcard полей фильтра
}

// CopySchedulesResponse ответ операции копирования расписаний
type CopySchedulesResponse struct {
	SourceDate string             `json:"sourceDate"`
	TargetDate string             `json:"targetDate"`
	Copied     int                `json:"copied"`
	Schedules  []ScheduleResponse `json:"schedules"`
}

// LeaveResponse ответ с данными отпуска
type LeaveResponse struct {
	ID        int64     `json:"id"`
	DoctorID  int64     `json:"doctorId"`
	LeaveDate string    `json:"leaveDate"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// MarkLeaveResponse ответ отметки отпуска.
// Список конфликтующих записей возвращается регистратуре для ручного переноса.
type MarkLeaveResponse struct {
	Leave                   LeaveResponse `json:"leave"`
	ConflictingAppointments []int64       `json:"conflictingAppointments,omitempty"`
}

// LeaveListResponse ответ со списком отпусков врача
type LeaveListResponse struct {
	DoctorID int64           `json:"doctorId"`
	Leaves   []LeaveResponse `json:"leaves"`
}

// Методы конвертации

// FromDomainSchedule конвертирует domain модель в DTO
func FromDomainSchedule(s *domain.Schedule) *ScheduleResponse {
	if s == nil {
		return nil
	}

	resp := &ScheduleResponse{
		ID:           s.ID,
		DoctorID:     s.DoctorID,
		DepartmentID: s.DepartmentID,
		DayOfWeek:    string(s.DayOfWeek),
		StartTime:    s.StartTime.String(),
		EndTime:      s.EndTime.String(),
		ValidFrom:    s.ValidFrom.Format(domain.DateFormat),
		Status:       string(s.Status),
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}

	if s.ValidTo != nil {
		validToStr := s.ValidTo.Format(domain.DateFormat)
		resp.ValidTo = &validToStr
	}

	return resp
}

// FromDomainScheduleList конвертирует список domain моделей в DTO
func FromDomainScheduleList(schedules []*domain.Schedule, activeFilters int) *ScheduleListResponse {
	resp := &ScheduleListResponse{
		Schedules:     make([]ScheduleResponse, 0, len(schedules)),
		ActiveFilters: activeFilters,
	}

	for _, schedule := range schedules {
		if scheduleResp := FromDomainSchedule(schedule); scheduleResp != nil {
			resp.Schedules = append(resp.Schedules, *scheduleResp)
		}
	}

	return resp
}

// FromDomainLeave конвертирует domain модель отпуска в DTO
func FromDomainLeave(l *domain.DoctorLeave) *LeaveResponse {
	if l == nil {
		return nil
	}

	return &LeaveResponse{
		ID:        l.ID,
		DoctorID:  l.DoctorID,
		LeaveDate: l.LeaveDate.Format(domain.DateFormat),
		Note:      l.Note,
		CreatedAt: l.CreatedAt,
	}
}

// FromDomainLeaveList конвертирует список отпусков в DTO
func FromDomainLeaveList(doctorID int64, leaves []*domain.DoctorLeave) *LeaveListResponse {
	resp := &LeaveListResponse{
		DoctorID: doctorID,
		Leaves:   make([]LeaveResponse, 0, len(leaves)),
	}

	for _, leave := range leaves {
		if leaveResp := FromDomainLeave(leave); leaveResp != nil {
			resp.Leaves = append(resp.Leaves, *leaveResp)
		}
	}

	return resp
}

// ToDomainScheduleStatus конвертирует строку в domain.ScheduleStatus с валидацией
func ToDomainScheduleStatus(status string) (domain.ScheduleStatus, error) {
	s := domain.ScheduleStatus(status)

	if s != domain.ScheduleActive && s != domain.ScheduleInactive {
		return "", ErrInvalidStatus
	}

	return s, nil
}

// ToDomainSchedule конвертирует запрос на создание в domain модель
func (r *CreateScheduleRequest) ToDomainSchedule() (*domain.Schedule, error) {
	day := domain.Weekday(r.DayOfWeek)
	if !day.IsValid() {
		return nil, ErrInvalidDayOfWeek
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	validFrom, err := time.Parse(domain.DateFormat, r.ValidFrom)
	if err != nil {
		return nil, err
	}

	schedule := &domain.Schedule{
		DoctorID:     r.DoctorID,
		DepartmentID: r.DepartmentID,
		DayOfWeek:    day,
		StartTime:    startTime,
		EndTime:      endTime,
		ValidFrom:    validFrom,
		Status:       domain.ScheduleActive,
	}

	if r.ValidTo != nil {
		validTo, err := time.Parse(domain.DateFormat, *r.ValidTo)
		if err != nil {
			return nil, err
		}
		schedule.ValidTo = &validTo
	}

	return schedule, nil
}
