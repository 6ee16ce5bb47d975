package bot

import (
	"context"

	"github.com/amirsdt/SCC-ReservationService/internal/domain"
	reportsModels "github.com/amirsdt/SCC-ReservationService/internal/service/reports/models"
	rosterModels "github.com/amirsdt/SCC-ReservationService/internal/service/roster/models"
	scheduleModels "github.com/amirsdt/SCC-ReservationService/internal/service/schedule/models"
	"github.com/amirsdt/SCC-ReservationService/internal/usecase/register_player"
)

// RosterService интерфейс сервиса составов
type RosterService interface {
	AddPlayer(ctx context.Context, req *rosterModels.AddPlayerRequest) (*rosterModels.PlayerResponse, error)
	RemovePlayer(ctx context.Context, req *rosterModels.RemovePlayerRequest) (*rosterModels.PlayerResponse, error)
	ListPlayers(ctx context.Context, sport domain.Sport) (*rosterModels.RosterResponse, error)
	FindOwner(ctx context.Context, sport domain.Sport, rawPhone string) (*rosterModels.PlayerResponse, error)
}

// ScheduleService интерфейс сервиса расписания
type ScheduleService interface {
	AddSlot(ctx context.Context, req *scheduleModels.AddSlotRequest) (*scheduleModels.SlotResponse, error)
	ListActive(ctx context.Context, sport domain.Sport, group string) ([]scheduleModels.SlotResponse, error)
	ListAll(ctx context.Context, sport domain.Sport) (*scheduleModels.ScheduleResponse, error)
	RemoveSlotAt(ctx context.Context, sport domain.Sport, group string, position int) (*scheduleModels.SlotResponse, error)
}

// ReportsService интерфейс сервиса отчетов
type ReportsService interface {
	ListRegistrations(ctx context.Context) (*reportsModels.RegistrationsReport, error)
}

// RegisterUseCase интерфейс use case записи игрока на слот
type RegisterUseCase interface {
	Execute(ctx context.Context, req *register_player.Request) (*register_player.Response, error)
}

// BotUserRepository интерфейс репозитория пользователей бота
type BotUserRepository interface {
	Upsert(ctx context.Context, u *domain.BotUser) error
}

// Metrics интерфейс счетчиков регистраций
type Metrics interface {
	ObserveRegistration(sport string, outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
