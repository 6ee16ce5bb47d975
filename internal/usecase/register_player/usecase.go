package register_player

import (
	"context"
	"errors"
	"fmt"

	"github.com/amirsdt/SCC-ReservationService/internal/domain"
	regRepo "github.com/amirsdt/SCC-ReservationService/internal/infra/storage/registration"
	rosterRepo "github.com/amirsdt/SCC-ReservationService/internal/infra/storage/roster"
	slotRepo "github.com/amirsdt/SCC-ReservationService/internal/infra/storage/slot"
	"github.com/amirsdt/SCC-ReservationService/pkg/dateutil"
	"github.com/amirsdt/SCC-ReservationService/pkg/phone"
)

// UseCase use case записи игрока на слот
type UseCase struct {
	slotRepo     SlotRepository
	rosterRepo   RosterRepository
	regRepo      RegistrationRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	rosterRepo RosterRepository,
	regRepo RegistrationRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:     slotRepo,
		rosterRepo:   rosterRepo,
		regRepo:      regRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет запись игрока на слот.
// Проверки и вставка идут в одной сериализуемой транзакции со
// строчной блокировкой слота, чтобы две параллельные записи не
// пробили вместимость
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RegisterPlayer: sport=%s group=%s slot=%d", req.Sport, req.Group, req.SlotID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RegisterPlayer: validation failed: %v", err)
		return nil, err
	}

	// 2. Нормализация и проверка телефона
	normalized := phone.Normalize(req.RawPhone)
	if !phone.IsValid(normalized) {
		uc.logger.Warn("RegisterPlayer: invalid phone %q", req.RawPhone)
		return nil, ErrInvalidPhone
	}

	var (
		slot   *domain.Slot
		player *domain.Player
		regID  int64
	)

	// 3. Проверки и вставка в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Слот читается с блокировкой FOR UPDATE
		var err error
		slot, err = uc.slotRepo.GetByID(txCtx, req.SlotID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				return ErrSlotNotFound
			}
			return fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
		}

		// 3.2. Слот должен принадлежать разделу из диалога
		if slot.Sport != req.Sport || slot.Group != req.Group {
			return ErrSlotNotFound
		}

		// 3.3. Просроченный слот мог остаться между ночными чистками
		if slot.Expired(uc.timeProvider.Now()) {
			return ErrSlotExpired
		}

		// 3.4. Телефон должен быть в составе вида спорта
		player, err = uc.rosterRepo.GetBySportAndPhone(txCtx, req.Sport, normalized)
		if err != nil {
			if errors.Is(err, rosterRepo.ErrPlayerNotFound) {
				return ErrNotOnRoster
			}
			return fmt.Errorf("%w: failed to get player: %v", ErrInternal, err)
		}

		// 3.5. Для футзала группа игрока должна совпадать с группой слота
		if req.Sport.Grouped() && player.Group != slot.Group {
			return &WrongGroupError{OwnGroup: player.Group}
		}

		// 3.6. Повторная запись проверяется раньше вместимости: игрок,
		// уже занявший место, получает сообщение о дубле, а не об
		// отсутствии мест
		exists, err := uc.regRepo.ExistsBySlotAndPhone(txCtx, slot.ID, normalized)
		if err != nil {
			return fmt.Errorf("%w: failed to check registration: %v", ErrInternal, err)
		}
		if exists {
			return ErrDuplicateRegistration
		}

		// 3.7. Проверка вместимости
		count, err := uc.regRepo.CountBySlot(txCtx, slot.ID)
		if err != nil {
			return fmt.Errorf("%w: failed to count registrations: %v", ErrInternal, err)
		}
		if count >= slot.Capacity {
			return ErrCapacityFull
		}

		// 3.8. Вставка регистрации
		reg := &domain.Registration{
			SlotID: slot.ID,
			Phone:  normalized,
			Name:   player.Name,
		}
		created, err := uc.regRepo.Create(txCtx, reg)
		if err != nil {
			if errors.Is(err, regRepo.ErrDuplicateRegistration) {
				return ErrDuplicateRegistration
			}
			return fmt.Errorf("%w: failed to create registration: %v", ErrInternal, err)
		}
		regID = created.ID
		return nil
	})
	if err != nil {
		var groupErr *WrongGroupError
		switch {
		case errors.Is(err, ErrSlotNotFound),
			errors.Is(err, ErrSlotExpired),
			errors.Is(err, ErrNotOnRoster),
			errors.Is(err, ErrDuplicateRegistration),
			errors.Is(err, ErrCapacityFull):
			uc.logger.Warn("RegisterPlayer: rejected slot=%d phone=%s: %v", req.SlotID, normalized, err)
		case errors.As(err, &groupErr):
			uc.logger.Warn("RegisterPlayer: wrong group for phone=%s, own group=%s", normalized, groupErr.OwnGroup)
		default:
			uc.logger.Error("RegisterPlayer: failed slot=%d phone=%s: %v", req.SlotID, normalized, err)
		}
		return nil, err
	}

	uc.logger.Info("RegisterPlayer: registered %s for slot=%d", normalized, slot.ID)

	return &Response{
		RegistrationID: regID,
		PlayerName:     player.Name,
		Sport:          slot.Sport,
		Group:          slot.Group,
		Date:           slot.Date,
		DateJalali:     dateutil.FormatJalali(slot.Date),
		StartTime:      slot.StartTime,
		EndTime:        slot.EndTime,
	}, nil
}
