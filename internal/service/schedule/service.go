package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/amirsdt/SCC-ReservationService/internal/domain"
	slotRepo "github.com/amirsdt/SCC-ReservationService/internal/infra/storage/slot"
	"github.com/amirsdt/SCC-ReservationService/internal/service/schedule/models"
	"github.com/amirsdt/SCC-ReservationService/pkg/dateutil"
	"github.com/amirsdt/SCC-ReservationService/pkg/types"
)

// Service сервис для работы с расписанием слотов
type Service struct {
	slotRepo     SlotRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(
	slotRepo SlotRepository,
	txManager TransactionManager,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		slotRepo:     slotRepo,
		txManager:    txManager,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// AddSlot добавляет слот в расписание раздела.
// Дата принимается в григорианском или джалали формате, прошедшие даты
// отклоняются
func (s *Service) AddSlot(ctx context.Context, req *models.AddSlotRequest) (*models.SlotResponse, error) {
	s.logger.Info("AddSlot: sport=%s group=%s date=%s %s-%s cap=%d",
		req.Sport, req.Group, req.Date, req.StartTime, req.EndTime, req.Capacity)

	if err := validatePartition(req.Sport, req.Group); err != nil {
		return nil, err
	}

	date, err := dateutil.ParseDate(req.Date)
	if err != nil {
		s.logger.Warn("AddSlot: invalid date %q", req.Date)
		return nil, ErrInvalidDate
	}
	today := dateutil.DateOnly(s.timeProvider.Now())
	if date.Before(today) {
		s.logger.Warn("AddSlot: past date %q", req.Date)
		return nil, ErrPastDate
	}

	start, err := types.NewTimeStringFromString(req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: start time %q", ErrInvalidTimeRange, req.StartTime)
	}
	end, err := types.NewTimeStringFromString(req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: end time %q", ErrInvalidTimeRange, req.EndTime)
	}
	if !start.IsBefore(end) {
		return nil, fmt.Errorf("%w: start %s is not before end %s", ErrInvalidTimeRange, start, end)
	}

	if req.Capacity < domain.MinCapacity || req.Capacity > domain.MaxCapacity {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCapacity, req.Capacity)
	}

	slot := &domain.Slot{
		Sport:     req.Sport,
		Group:     req.Group,
		Date:      date,
		StartTime: start,
		EndTime:   end,
		Capacity:  req.Capacity,
	}

	created, err := s.slotRepo.Create(ctx, slot)
	if err != nil {
		s.logger.Error("AddSlot: repository error: %v", err)
		return nil, fmt.Errorf("%w: AddSlot - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("AddSlot: created slot id=%d sport=%s group=%s", created.ID, created.Sport, created.Group)

	// Позиция нового слота видна только в контексте полного списка,
	// поэтому здесь возвращаем её нулевой
	return models.FromDomainSlot(created, 0), nil
}

// ListActive возвращает непросроченные слоты раздела с позициями
func (s *Service) ListActive(ctx context.Context, sport domain.Sport, group string) ([]models.SlotResponse, error) {
	if err := validatePartition(sport, group); err != nil {
		return nil, err
	}

	today := dateutil.DateOnly(s.timeProvider.Now())
	slots, err := s.slotRepo.ListActive(ctx, sport, group, today)
	if err != nil {
		s.logger.Error("ListActive: repository error sport=%s group=%s: %v", sport, group, err)
		return nil, fmt.Errorf("%w: ListActive - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainSlotList(slots), nil
}

// ListPartition возвращает все слоты раздела, включая просроченные,
// с позициями. Этими позициями адресуется удаление
func (s *Service) ListPartition(ctx context.Context, sport domain.Sport, group string) ([]models.SlotResponse, error) {
	if err := validatePartition(sport, group); err != nil {
		return nil, err
	}

	slots, err := s.slotRepo.ListByPartition(ctx, sport, group)
	if err != nil {
		s.logger.Error("ListPartition: repository error sport=%s group=%s: %v", sport, group, err)
		return nil, fmt.Errorf("%w: ListPartition - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainSlotList(slots), nil
}

// ListAll возвращает расписание вида спорта по всем его разделам
func (s *Service) ListAll(ctx context.Context, sport domain.Sport) (*models.ScheduleResponse, error) {
	if !sport.IsValid() {
		return nil, fmt.Errorf("%w: unknown sport %q", ErrInvalidInput, sport)
	}

	resp := &models.ScheduleResponse{Sport: sport}
	for _, part := range partitionsOf(sport) {
		slots, err := s.slotRepo.ListByPartition(ctx, part.Sport, part.Group)
		if err != nil {
			s.logger.Error("ListAll: repository error sport=%s group=%s: %v", part.Sport, part.Group, err)
			return nil, fmt.Errorf("%w: ListAll - repository error: %v", ErrInternal, err)
		}
		if len(slots) == 0 {
			continue
		}
		resp.Groups = append(resp.Groups, models.GroupSchedule{
			Group: part.Group,
			Slots: models.FromDomainSlotList(slots),
		})
	}
	return resp, nil
}

// RemoveSlotAt удаляет слот раздела по его позиции в полном списке.
// Позиция резолвится в идентификатор внутри сериализуемой транзакции,
// чтобы параллельные изменения расписания не сместили нумерацию
func (s *Service) RemoveSlotAt(ctx context.Context, sport domain.Sport, group string, position int) (*models.SlotResponse, error) {
	s.logger.Info("RemoveSlotAt: sport=%s group=%s position=%d", sport, group, position)

	if err := validatePartition(sport, group); err != nil {
		return nil, err
	}

	var removed *domain.Slot
	err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		slots, err := s.slotRepo.ListByPartition(ctx, sport, group)
		if err != nil {
			return fmt.Errorf("%w: RemoveSlotAt - repository error: %v", ErrInternal, err)
		}
		if position < 1 || position > len(slots) {
			return ErrSlotIndexOutOfRange
		}

		target := slots[position-1]
		if err := s.slotRepo.Delete(ctx, target.ID); err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				return ErrSlotIndexOutOfRange
			}
			return fmt.Errorf("%w: RemoveSlotAt - repository error: %v", ErrInternal, err)
		}
		removed = target
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrSlotIndexOutOfRange) {
			s.logger.Warn("RemoveSlotAt: position %d out of range sport=%s group=%s", position, sport, group)
		} else {
			s.logger.Error("RemoveSlotAt: failed sport=%s group=%s position=%d: %v", sport, group, position, err)
		}
		return nil, err
	}

	s.logger.Info("RemoveSlotAt: removed slot id=%d sport=%s group=%s", removed.ID, sport, group)
	return models.FromDomainSlot(removed, position), nil
}

// SweepExpired удаляет все просроченные слоты во всех разделах и
// возвращает количество удаленных. Записи на удаленные слоты уходят
// каскадом на уровне БД
func (s *Service) SweepExpired(ctx context.Context) (int64, error) {
	today := dateutil.DateOnly(s.timeProvider.Now())

	var total int64
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		for _, part := range domain.AllPartitions() {
			n, err := s.slotRepo.DeleteExpired(ctx, part.Sport, part.Group, today)
			if err != nil {
				return fmt.Errorf("%w: SweepExpired - repository error: %v", ErrInternal, err)
			}
			total += n
		}
		return nil
	})
	if err != nil {
		s.logger.Error("SweepExpired: failed: %v", err)
		return 0, err
	}

	s.logger.Info("SweepExpired: removed %d expired slots", total)
	return total, nil
}

func partitionsOf(sport domain.Sport) []domain.Partition {
	if sport.Grouped() {
		parts := make([]domain.Partition, 0, len(domain.FutsalGroups))
		for _, g := range domain.FutsalGroups {
			parts = append(parts, domain.Partition{Sport: sport, Group: g})
		}
		return parts
	}
	return []domain.Partition{{Sport: sport}}
}

func validatePartition(sport domain.Sport, group string) error {
	if !sport.IsValid() {
		return fmt.Errorf("%w: unknown sport %q", ErrInvalidInput, sport)
	}
	if !sport.IsValidGroup(group) {
		return fmt.Errorf("%w: bad group %q for sport %s", ErrInvalidInput, group, sport)
	}
	return nil
}
