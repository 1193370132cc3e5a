package get_day_slots

import (
	"github.com/m04kA/HMS-SchedulingService/internal/domain"
	getDaySlots "github.com/m04kA/HMS-SchedulingService/internal/usecase/get_day_slots"
)

// SlotResponse HTTP model одного слота
type SlotResponse struct {
	StartTime       string `json:"startTime"` // "09:30"
	EndTime         string `json:"endTime"`   // "10:00"
	DurationMinutes int    `json:"durationMinutes"`
	Available       bool   `json:"available"`
	AppointmentID   *int64 `json:"appointmentId,omitempty"` // Занявшая слот запись
}

// DaySlotsResponse HTTP response model сетки слотов на день
type DaySlotsResponse struct {
	DoctorID int64          `json:"doctorId"`
	Date     string         `json:"date"`
	OnLeave  bool           `json:"onLeave"`
	Slots    []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *getDaySlots.Response) *DaySlotsResponse {
	if resp == nil {
		return nil
	}

	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, slot := range resp.Slots {
		slotResp := SlotResponse{
			StartTime:       slot.StartTime.String(),
			DurationMinutes: slot.DurationMinutes,
			Available:       slot.Available,
			AppointmentID:   slot.AppointmentID,
		}

		if endTime, err := slot.StartTime.AddMinutes(slot.DurationMinutes); err == nil {
			slotResp.EndTime = endTime.String()
		}

		slots = append(slots, slotResp)
	}

	return &DaySlotsResponse{
		DoctorID: resp.DoctorID,
		Date:     resp.Date.Format(domain.DateFormat),
		OnLeave:  resp.OnLeave,
		Slots:    slots,
	}
}
