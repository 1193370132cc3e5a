package get_day_slots

import (
	"time"

	"github.com/m04kA/HMS-SchedulingService/internal/domain"
)

// Request модель запроса сетки слотов на день
type Request struct {
	DoctorID int64     // ID врача
	Date     time.Time // Календарная дата (без времени)
}

// Response модель ответа с сеткой слотов
type Response struct {
	DoctorID int64             // ID врача
	Date     time.Time         // Дата, на которую построена сетка
	OnLeave  bool              // true, если на эту дату у врача отмечен отпуск
	Slots    []domain.TimeSlot // Ровно 16 слотов в порядке возрастания времени
}
