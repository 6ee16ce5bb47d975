package models

import (
	"time"

	"github.com/amirsdt/SCC-ReservationService/internal/domain"
	"github.com/amirsdt/SCC-ReservationService/pkg/dateutil"
	"github.com/amirsdt/SCC-ReservationService/pkg/types"
)

// AddSlotRequest запрос на добавление слота в расписание.
// Date принимает григорианский (YYYY-MM-DD) или джалали (YYYY/MM/DD) формат
type AddSlotRequest struct {
	Sport     domain.Sport
	Group     string
	Date      string
	StartTime string
	EndTime   string
	Capacity  int
}

// SlotResponse слот расписания. Position - порядковый номер слота в
// выдаче раздела, им адресуются команды удаления
type SlotResponse struct {
	ID         int64
	Position   int
	Sport      domain.Sport
	Group      string
	Date       time.Time
	DateJalali string
	StartTime  types.TimeString
	EndTime    types.TimeString
	Capacity   int
}

// GroupSchedule расписание одного раздела (спорт, группа)
type GroupSchedule struct {
	Group string
	Slots []SlotResponse
}

// ScheduleResponse расписание вида спорта по разделам
type ScheduleResponse struct {
	Sport  domain.Sport
	Groups []GroupSchedule
}

// FromDomainSlot конвертирует доменный слот в ответ сервиса
func FromDomainSlot(s *domain.Slot, position int) *SlotResponse {
	return &SlotResponse{
		ID:         s.ID,
		Position:   position,
		Sport:      s.Sport,
		Group:      s.Group,
		Date:       s.Date,
		DateJalali: dateutil.FormatJalali(s.Date),
		StartTime:  s.StartTime,
		EndTime:    s.EndTime,
		Capacity:   s.Capacity,
	}
}

// FromDomainSlotList конвертирует список слотов, нумеруя позиции с единицы
func FromDomainSlotList(slots []*domain.Slot) []SlotResponse {
	out := make([]SlotResponse, 0, len(slots))
	for i, s := range slots {
		out = append(out, *FromDomainSlot(s, i+1))
	}
	return out
}
