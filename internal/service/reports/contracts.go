package reports

import (
	"context"
	"time"

	"github.com/amirsdt/SCC-ReservationService/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Slot, error)
	ListByPartition(ctx context.Context, sport domain.Sport, group string) ([]*domain.Slot, error)
}

// RegistrationRepository интерфейс репозитория регистраций
type RegistrationRepository interface {
	ListBySlot(ctx context.Context, slotID int64) ([]*domain.Registration, error)
	CountByPartition(ctx context.Context) ([]*domain.PartitionCount, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
