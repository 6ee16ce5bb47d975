package reports

import (
	"context"
	"errors"
	"fmt"

	"github.com/amirsdt/SCC-ReservationService/internal/domain"
	slotRepo "github.com/amirsdt/SCC-ReservationService/internal/infra/storage/slot"
	"github.com/amirsdt/SCC-ReservationService/internal/service/reports/models"
	"github.com/amirsdt/SCC-ReservationService/pkg/dateutil"
)

// Service сервис отчетов по регистрациям
type Service struct {
	slotRepo     SlotRepository
	regRepo      RegistrationRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса отчетов
func NewService(
	slotRepo SlotRepository,
	regRepo RegistrationRepository,
	txManager TransactionManager,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		slotRepo:     slotRepo,
		regRepo:      regRepo,
		txManager:    txManager,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// ListRegistrations собирает все текущие регистрации по всем разделам,
// включая записи на будущие даты. Слоты без регистраций в отчет не
// попадают, каждый слот несет собственную дату. Чтение идет в одной
// read-only транзакции, чтобы отчет был согласованным срезом
func (s *Service) ListRegistrations(ctx context.Context) (*models.RegistrationsReport, error) {
	report := &models.RegistrationsReport{}

	err := s.txManager.DoReadOnly(ctx, func(ctx context.Context) error {
		for _, part := range domain.AllPartitions() {
			slots, err := s.slotRepo.ListByPartition(ctx, part.Sport, part.Group)
			if err != nil {
				return fmt.Errorf("%w: ListRegistrations - repository error: %v", ErrInternal, err)
			}
			for _, slot := range slots {
				regs, err := s.regRepo.ListBySlot(ctx, slot.ID)
				if err != nil {
					return fmt.Errorf("%w: ListRegistrations - repository error: %v", ErrInternal, err)
				}
				if len(regs) == 0 {
					continue
				}
				names := make([]string, 0, len(regs))
				for _, reg := range regs {
					names = append(names, reg.Name)
				}
				report.Buckets = append(report.Buckets, models.SlotBucket{
					Sport:      slot.Sport,
					Group:      slot.Group,
					Date:       slot.Date,
					DateJalali: dateutil.FormatJalali(slot.Date),
					StartTime:  slot.StartTime,
					EndTime:    slot.EndTime,
					Capacity:   slot.Capacity,
					Names:      names,
				})
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("ListRegistrations: failed: %v", err)
		return nil, err
	}

	s.logger.Info("ListRegistrations: %d buckets with registrations", len(report.Buckets))
	return report, nil
}

// ListSlotRegistrations возвращает регистрации одного слота вместе с
// его описанием. Используется административным HTTP API
func (s *Service) ListSlotRegistrations(ctx context.Context, slotID int64) (*models.SlotRegistrations, error) {
	var result *models.SlotRegistrations

	err := s.txManager.DoReadOnly(ctx, func(ctx context.Context) error {
		slot, err := s.slotRepo.GetByID(ctx, slotID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				return ErrSlotNotFound
			}
			return fmt.Errorf("%w: ListSlotRegistrations - repository error: %v", ErrInternal, err)
		}

		regs, err := s.regRepo.ListBySlot(ctx, slot.ID)
		if err != nil {
			return fmt.Errorf("%w: ListSlotRegistrations - repository error: %v", ErrInternal, err)
		}

		entries := make([]models.RegistrationEntry, 0, len(regs))
		for _, reg := range regs {
			entries = append(entries, models.RegistrationEntry{
				Name:         reg.Name,
				Phone:        reg.Phone,
				RegisteredAt: reg.CreatedAt,
			})
		}

		result = &models.SlotRegistrations{
			SlotID:     slot.ID,
			Sport:      slot.Sport,
			Group:      slot.Group,
			Date:       slot.Date,
			DateJalali: dateutil.FormatJalali(slot.Date),
			StartTime:  slot.StartTime,
			EndTime:    slot.EndTime,
			Capacity:   slot.Capacity,
			Entries:    entries,
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrSlotNotFound) {
			s.logger.Error("ListSlotRegistrations: failed slot=%d: %v", slotID, err)
		}
		return nil, err
	}

	return result, nil
}

// DailySummary возвращает количество регистраций по каждому разделу.
// Разделы без регистраций получают нулевые значения, порядок разделов
// канонический
func (s *Service) DailySummary(ctx context.Context) (*models.DailySummary, error) {
	today := dateutil.DateOnly(s.timeProvider.Now())

	counts, err := s.regRepo.CountByPartition(ctx)
	if err != nil {
		s.logger.Error("DailySummary: repository error: %v", err)
		return nil, fmt.Errorf("%w: DailySummary - repository error: %v", ErrInternal, err)
	}

	byPartition := make(map[domain.Partition]int, len(counts))
	for _, c := range counts {
		byPartition[domain.Partition{Sport: c.Sport, Group: c.Group}] = c.Count
	}

	summary := &models.DailySummary{
		Date:       today,
		DateJalali: dateutil.FormatJalali(today),
	}
	for _, part := range domain.AllPartitions() {
		count := byPartition[part]
		summary.Totals = append(summary.Totals, models.PartitionTotal{
			Sport: part.Sport,
			Group: part.Group,
			Count: count,
		})
		summary.Grand += count
	}

	s.logger.Info("DailySummary: %d registrations total", summary.Grand)
	return summary, nil
}
