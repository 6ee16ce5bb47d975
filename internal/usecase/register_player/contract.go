package register_player

import (
	"context"
	"time"

	"github.com/amirsdt/SCC-ReservationService/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Slot, error)
}

// RosterRepository интерфейс репозитория составов
type RosterRepository interface {
	GetBySportAndPhone(ctx context.Context, sport domain.Sport, phone string) (*domain.Player, error)
}

// RegistrationRepository интерфейс репозитория регистраций
type RegistrationRepository interface {
	Create(ctx context.Context, reg *domain.Registration) (*domain.Registration, error)
	ExistsBySlotAndPhone(ctx context.Context, slotID int64, phone string) (bool, error)
	CountBySlot(ctx context.Context, slotID int64) (int, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
