package domain

// Sport represents one of the bookable sports
type Sport string

const (
	SportFutsal     Sport = "futsal"
	SportBasketball Sport = "basketball"
	SportVolleyball Sport = "volleyball"
)

// AllSports lists every supported sport in a fixed order
var AllSports = []Sport{SportFutsal, SportBasketball, SportVolleyball}

// FutsalGroups lists the futsal group letters in scan order
var FutsalGroups = []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J"}

// IsValid returns true if the sport is one of the supported sports
func (s Sport) IsValid() bool {
	switch s {
	case SportFutsal, SportBasketball, SportVolleyball:
		return true
	}
	return false
}

// Grouped returns true if the sport is partitioned into named groups
func (s Sport) Grouped() bool {
	return s == SportFutsal
}

// IsValidGroup returns true if group is a valid partition name for the
// sport: one of the group letters for futsal, empty for the rest
func (s Sport) IsValidGroup(group string) bool {
	if !s.Grouped() {
		return group == ""
	}
	for _, g := range FutsalGroups {
		if g == group {
			return true
		}
	}
	return false
}

// Partition identifies one roster/calendar partition: a (sport, group)
// pair. Group is empty for ungrouped sports
type Partition struct {
	Sport Sport
	Group string
}

// AllPartitions lists every partition in reporting order: futsal groups
// A..J first, then the ungrouped sports
func AllPartitions() []Partition {
	parts := make([]Partition, 0, len(FutsalGroups)+2)
	for _, g := range FutsalGroups {
		parts = append(parts, Partition{Sport: SportFutsal, Group: g})
	}
	parts = append(parts,
		Partition{Sport: SportBasketball},
		Partition{Sport: SportVolleyball},
	)
	return parts
}
