// Package jobs содержит фоновые задачи сервиса. Единственная задача -
// ночная чистка просроченных слотов с рассылкой сводки администраторам
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/amirsdt/SCC-ReservationService/internal/bot"
	reportsModels "github.com/amirsdt/SCC-ReservationService/internal/service/reports/models"
)

// ScheduleService интерфейс сервиса расписания
type ScheduleService interface {
	SweepExpired(ctx context.Context) (int64, error)
}

// ReportsService интерфейс сервиса отчетов
type ReportsService interface {
	DailySummary(ctx context.Context) (*reportsModels.DailySummary, error)
}

// Sender интерфейс рассылки сообщений администраторам
type Sender interface {
	SendText(chatID int64, text string) error
	AdminIDs() []int64
}

// Metrics интерфейс счетчика чистки
type Metrics interface {
	ObserveSweep(n int64)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// DailyReport ежедневная задача: в назначенное время суток удаляет
// просроченные слоты и шлет сводку по регистрациям всем администраторам.
// Чистка идет до сводки, чтобы просроченные слоты не попали в отчет
type DailyReport struct {
	scheduleService ScheduleService
	reportsService  ReportsService
	sender          Sender
	metrics         Metrics
	logger          Logger

	hour   int
	minute int
}

// NewDailyReport создает задачу. at задается строкой HH:MM
func NewDailyReport(
	scheduleService ScheduleService,
	reportsService ReportsService,
	sender Sender,
	metrics Metrics,
	logger Logger,
	at string,
) (*DailyReport, error) {
	t, err := time.Parse("15:04", at)
	if err != nil {
		return nil, fmt.Errorf("jobs: bad report time %q: %w", at, err)
	}

	return &DailyReport{
		scheduleService: scheduleService,
		reportsService:  reportsService,
		sender:          sender,
		metrics:         metrics,
		logger:          logger,
		hour:            t.Hour(),
		minute:          t.Minute(),
	}, nil
}

// Run крутит задачу до отмены контекста
func (j *DailyReport) Run(ctx context.Context) error {
	for {
		wait := time.Until(j.nextRun(time.Now()))
		j.logger.Info("jobs: next daily report in %s", wait.Round(time.Second))

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
			j.runOnce(ctx)
		}
	}
}

// runOnce выполняет чистку и рассылку. Ошибки логируются, но не
// останавливают задачу: следующий запуск будет через сутки
func (j *DailyReport) runOnce(ctx context.Context) {
	swept, err := j.scheduleService.SweepExpired(ctx)
	if err != nil {
		j.logger.Error("jobs: sweep expired slots: %v", err)
		return
	}
	j.metrics.ObserveSweep(swept)

	summary, err := j.reportsService.DailySummary(ctx)
	if err != nil {
		j.logger.Error("jobs: daily summary: %v", err)
		return
	}

	text := bot.FormatDailySummary(summary, swept)
	for _, id := range j.sender.AdminIDs() {
		if err := j.sender.SendText(id, text); err != nil {
			j.logger.Warn("jobs: send daily report to %d: %v", id, err)
		}
	}

	j.logger.Info("jobs: daily report sent, swept=%d total=%d", swept, summary.Grand)
}

// nextRun ближайший момент запуска строго после now
func (j *DailyReport) nextRun(now time.Time) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), j.hour, j.minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
