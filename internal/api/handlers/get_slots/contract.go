package get_slots

import (
	"context"

	"github.com/amirsdt/SCC-ReservationService/internal/domain"
	scheduleModels "github.com/amirsdt/SCC-ReservationService/internal/service/schedule/models"
)

// ScheduleService интерфейс сервиса расписания
type ScheduleService interface {
	ListAll(ctx context.Context, sport domain.Sport) (*scheduleModels.ScheduleResponse, error)
	ListPartition(ctx context.Context, sport domain.Sport, group string) ([]scheduleModels.SlotResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
