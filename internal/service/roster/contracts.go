package roster

import (
	"context"

	"github.com/amirsdt/SCC-ReservationService/internal/domain"
)

// RosterRepository интерфейс репозитория составов
type RosterRepository interface {
	Create(ctx context.Context, player *domain.Player) (*domain.Player, error)
	GetBySportAndPhone(ctx context.Context, sport domain.Sport, phone string) (*domain.Player, error)
	Delete(ctx context.Context, sport domain.Sport, group, phone string) error
	ListBySport(ctx context.Context, sport domain.Sport) ([]*domain.Player, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
