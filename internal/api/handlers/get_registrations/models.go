package get_registrations

import (
	"time"

	reportsModels "github.com/amirsdt/SCC-ReservationService/internal/service/reports/models"
)

// Registration одна запись на слот в ответе API
type Registration struct {
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	RegisteredAt time.Time `json:"registeredAt"`
}

// Response регистрации слота вместе с его описанием
type Response struct {
	SlotID        int64          `json:"slotId"`
	Sport         string         `json:"sport"`
	Group         string         `json:"group,omitempty"`
	Date          string         `json:"date"`
	DateJalali    string         `json:"dateJalali"`
	StartTime     string         `json:"startTime"`
	EndTime       string         `json:"endTime"`
	Capacity      int            `json:"capacity"`
	Registrations []Registration `json:"registrations"`
}

func fromServiceModel(m *reportsModels.SlotRegistrations) *Response {
	regs := make([]Registration, 0, len(m.Entries))
	for _, e := range m.Entries {
		regs = append(regs, Registration{
			Name:         e.Name,
			Phone:        e.Phone,
			RegisteredAt: e.RegisteredAt,
		})
	}
	return &Response{
		SlotID:        m.SlotID,
		Sport:         string(m.Sport),
		Group:         m.Group,
		Date:          m.Date.Format("2006-01-02"),
		DateJalali:    m.DateJalali,
		StartTime:     m.StartTime.String(),
		EndTime:       m.EndTime.String(),
		Capacity:      m.Capacity,
		Registrations: regs,
	}
}
