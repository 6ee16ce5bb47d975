package domain

import "time"

// Player represents one roster entry: a participant eligible to register
// for slots of a sport. The normalized phone number is the identity key.
// For futsal a phone may belong to at most one group at any time
type Player struct {
	Sport     Sport
	Group     string // empty for ungrouped sports
	Phone     string
	Name      string
	CreatedAt time.Time
}
