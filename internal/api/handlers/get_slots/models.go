package get_slots

import (
	scheduleModels "github.com/amirsdt/SCC-ReservationService/internal/service/schedule/models"
)

// Slot слот расписания в ответе API
type Slot struct {
	ID         int64  `json:"id"`
	Position   int    `json:"position"`
	Group      string `json:"group,omitempty"`
	Date       string `json:"date"`
	DateJalali string `json:"dateJalali"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
	Capacity   int    `json:"capacity"`
}

// Response ответ со слотами одного вида спорта
type Response struct {
	Sport string `json:"sport"`
	Slots []Slot `json:"slots"`
}

func toSlot(s *scheduleModels.SlotResponse) Slot {
	return Slot{
		ID:         s.ID,
		Position:   s.Position,
		Group:      s.Group,
		Date:       s.Date.Format("2006-01-02"),
		DateJalali: s.DateJalali,
		StartTime:  s.StartTime.String(),
		EndTime:    s.EndTime.String(),
		Capacity:   s.Capacity,
	}
}
