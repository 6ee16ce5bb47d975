package models

import (
	"time"

	"github.com/amirsdt/SCC-ReservationService/internal/domain"
	"github.com/amirsdt/SCC-ReservationService/pkg/types"
)

// SlotBucket слот одного раздела вместе с именами записавшихся
type SlotBucket struct {
	Sport      domain.Sport
	Group      string
	Date       time.Time
	DateJalali string
	StartTime  types.TimeString
	EndTime    types.TimeString
	Capacity   int
	Names      []string
}

// RegistrationsReport все текущие регистрации по слотам. Buckets
// содержит только слоты, на которые кто-то записан
type RegistrationsReport struct {
	Buckets []SlotBucket
}

// Empty сообщает, что нет ни одной регистрации
func (r *RegistrationsReport) Empty() bool {
	return len(r.Buckets) == 0
}

// PartitionTotal количество регистраций в одном разделе
type PartitionTotal struct {
	Sport domain.Sport
	Group string
	Count int
}

// DailySummary сводка по всем разделам для ночного отчета
type DailySummary struct {
	Date       time.Time
	DateJalali string
	Totals     []PartitionTotal
	Grand      int
}

// RegistrationEntry одна регистрация в выдаче по слоту
type RegistrationEntry struct {
	Name         string
	Phone        string
	RegisteredAt time.Time
}

// SlotRegistrations регистрации одного слота вместе с его описанием
type SlotRegistrations struct {
	SlotID     int64
	Sport      domain.Sport
	Group      string
	Date       time.Time
	DateJalali string
	StartTime  types.TimeString
	EndTime    types.TimeString
	Capacity   int
	Entries    []RegistrationEntry
}
