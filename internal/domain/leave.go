package domain

import "time"

// DoctorLeave represents a single-date unavailability override layered on top
// of a doctor's recurring schedule. На дату отпуска все слоты врача недоступны.
type DoctorLeave struct {
	ID        int64
	DoctorID  int64
	LeaveDate time.Time
	Note      string
	CreatedAt time.Time
}
