package domain

import (
	"time"

	"github.com/amirsdt/SCC-ReservationService/pkg/types"
)

// Slot represents a single bookable time window with finite capacity.
// Slots carry an immutable generated ID; registrations reference that ID,
// so removing a slot never invalidates registrations of other slots
type Slot struct {
	ID        int64
	Sport     Sport
	Group     string // empty for ungrouped sports
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
	Capacity  int
	CreatedAt time.Time
}

// Expired returns true if the slot's date is strictly before today,
// independent of time-of-day
func (s *Slot) Expired(today time.Time) bool {
	return s.Date.Before(dateOnly(today))
}

// Partition returns the partition the slot belongs to
func (s *Slot) Partition() Partition {
	return Partition{Sport: s.Sport, Group: s.Group}
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
