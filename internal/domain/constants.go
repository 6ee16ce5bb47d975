package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Business validation constants
const (
	MinCapacity   = 0
	MaxCapacity   = 200
	MaxNameLength = 100
)
