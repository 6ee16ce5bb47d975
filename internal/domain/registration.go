package domain

import "time"

// Registration represents one participant registered for one slot.
// Name is a display-name snapshot taken at registration time
type Registration struct {
	ID        int64
	SlotID    int64
	Phone     string
	Name      string
	CreatedAt time.Time
}

// PartitionCount is a per-partition registration total used by the
// nightly summary
type PartitionCount struct {
	Sport Sport
	Group string
	Count int
}
