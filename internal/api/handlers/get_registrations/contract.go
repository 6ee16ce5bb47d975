package get_registrations

import (
	"context"

	reportsModels "github.com/amirsdt/SCC-ReservationService/internal/service/reports/models"
)

// ReportsService интерфейс сервиса отчетов
type ReportsService interface {
	ListSlotRegistrations(ctx context.Context, slotID int64) (*reportsModels.SlotRegistrations, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
