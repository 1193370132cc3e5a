package domain

import "github.com/m04kA/HMS-SchedulingService/pkg/types"

// TimeSlot represents one bookable 30-minute cell of a doctor's day.
// Производное представление: никогда не хранится, пересчитывается на каждый запрос.
type TimeSlot struct {
	StartTime       types.TimeString
	DurationMinutes int
	Available       bool
	AppointmentID   *int64 // ID записи, занимающей слот (nil, если свободен)
}

// IsOccupied returns true if the slot is taken by an appointment
func (s *TimeSlot) IsOccupied() bool {
	return !s.Available && s.AppointmentID != nil
}
