package roster

import (
	"context"
	"errors"
	"fmt"

	"github.com/amirsdt/SCC-ReservationService/internal/domain"
	rosterRepo "github.com/amirsdt/SCC-ReservationService/internal/infra/storage/roster"
	"github.com/amirsdt/SCC-ReservationService/internal/service/roster/models"
	"github.com/amirsdt/SCC-ReservationService/pkg/phone"
)

// Сколько первых игроков раздела показываем в выдаче состава
const displayLimit = 10

// Service сервис для работы с составами
type Service struct {
	rosterRepo RosterRepository
	txManager  TransactionManager
	logger     Logger
}

// NewService создает новый экземпляр сервиса составов
func NewService(rosterRepo RosterRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		rosterRepo: rosterRepo,
		txManager:  txManager,
		logger:     logger,
	}
}

// AddPlayer добавляет игрока в состав.
// Для футзала игрок может состоять только в одной группе, поэтому
// сначала ищем его по всему виду спорта и только потом создаем запись
func (s *Service) AddPlayer(ctx context.Context, req *models.AddPlayerRequest) (*models.PlayerResponse, error) {
	s.logger.Info("AddPlayer: sport=%s group=%s phone=%s", req.Sport, req.Group, req.Phone)

	if err := validatePartition(req.Sport, req.Group); err != nil {
		return nil, err
	}
	if req.Name == "" || len(req.Name) > domain.MaxNameLength {
		return nil, fmt.Errorf("%w: empty or too long name", ErrInvalidInput)
	}

	normalized := phone.Normalize(req.Phone)
	if !phone.IsValid(normalized) {
		s.logger.Warn("AddPlayer: invalid phone %q", req.Phone)
		return nil, ErrInvalidPhone
	}

	player := &domain.Player{
		Sport: req.Sport,
		Group: req.Group,
		Phone: normalized,
		Name:  req.Name,
	}

	err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		existing, err := s.rosterRepo.GetBySportAndPhone(ctx, req.Sport, normalized)
		if err != nil && !errors.Is(err, rosterRepo.ErrPlayerNotFound) {
			return fmt.Errorf("%w: AddPlayer - repository error: %v", ErrInternal, err)
		}
		if existing != nil {
			if req.Sport.Grouped() && existing.Group != req.Group {
				return &PlayerInOtherGroupError{Group: existing.Group}
			}
			return ErrPlayerExists
		}

		created, err := s.rosterRepo.Create(ctx, player)
		if err != nil {
			if errors.Is(err, rosterRepo.ErrPlayerExists) {
				return ErrPlayerExists
			}
			return fmt.Errorf("%w: AddPlayer - repository error: %v", ErrInternal, err)
		}
		player = created
		return nil
	})
	if err != nil {
		var groupErr *PlayerInOtherGroupError
		switch {
		case errors.Is(err, ErrPlayerExists):
			s.logger.Warn("AddPlayer: player %s already on roster sport=%s", normalized, req.Sport)
		case errors.As(err, &groupErr):
			s.logger.Warn("AddPlayer: player %s already in group %s", normalized, groupErr.Group)
		default:
			s.logger.Error("AddPlayer: failed for phone=%s: %v", normalized, err)
		}
		return nil, err
	}

	s.logger.Info("AddPlayer: added %s to sport=%s group=%s", normalized, req.Sport, req.Group)
	return models.FromDomainPlayer(player), nil
}

// RemovePlayer удаляет игрока из состава и возвращает удаленную запись
func (s *Service) RemovePlayer(ctx context.Context, req *models.RemovePlayerRequest) (*models.PlayerResponse, error) {
	s.logger.Info("RemovePlayer: sport=%s group=%s phone=%s", req.Sport, req.Group, req.Phone)

	if err := validatePartition(req.Sport, req.Group); err != nil {
		return nil, err
	}

	normalized := phone.Normalize(req.Phone)
	if !phone.IsValid(normalized) {
		s.logger.Warn("RemovePlayer: invalid phone %q", req.Phone)
		return nil, ErrInvalidPhone
	}

	var removed *domain.Player
	err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		player, err := s.rosterRepo.GetBySportAndPhone(ctx, req.Sport, normalized)
		if err != nil {
			if errors.Is(err, rosterRepo.ErrPlayerNotFound) {
				return ErrPlayerNotFound
			}
			return fmt.Errorf("%w: RemovePlayer - repository error: %v", ErrInternal, err)
		}
		if req.Sport.Grouped() && player.Group != req.Group {
			return ErrPlayerNotFound
		}

		if err := s.rosterRepo.Delete(ctx, req.Sport, req.Group, normalized); err != nil {
			if errors.Is(err, rosterRepo.ErrPlayerNotFound) {
				return ErrPlayerNotFound
			}
			return fmt.Errorf("%w: RemovePlayer - repository error: %v", ErrInternal, err)
		}
		removed = player
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrPlayerNotFound) {
			s.logger.Warn("RemovePlayer: player %s not found sport=%s group=%s", normalized, req.Sport, req.Group)
		} else {
			s.logger.Error("RemovePlayer: failed for phone=%s: %v", normalized, err)
		}
		return nil, err
	}

	s.logger.Info("RemovePlayer: removed %s from sport=%s group=%s", normalized, req.Sport, req.Group)
	return models.FromDomainPlayer(removed), nil
}

// FindOwner находит запись игрока по виду спорта и телефону
func (s *Service) FindOwner(ctx context.Context, sport domain.Sport, rawPhone string) (*models.PlayerResponse, error) {
	if !sport.IsValid() {
		return nil, fmt.Errorf("%w: unknown sport %q", ErrInvalidInput, sport)
	}

	normalized := phone.Normalize(rawPhone)
	if !phone.IsValid(normalized) {
		return nil, ErrInvalidPhone
	}

	player, err := s.rosterRepo.GetBySportAndPhone(ctx, sport, normalized)
	if err != nil {
		if errors.Is(err, rosterRepo.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		s.logger.Error("FindOwner: repository error for phone=%s: %v", normalized, err)
		return nil, fmt.Errorf("%w: FindOwner - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainPlayer(player), nil
}

// ListPlayers возвращает состав вида спорта по разделам.
// В каждом разделе показываем первых displayLimit игроков, Total хранит
// полный размер раздела
func (s *Service) ListPlayers(ctx context.Context, sport domain.Sport) (*models.RosterResponse, error) {
	if !sport.IsValid() {
		return nil, fmt.Errorf("%w: unknown sport %q", ErrInvalidInput, sport)
	}

	players, err := s.rosterRepo.ListBySport(ctx, sport)
	if err != nil {
		s.logger.Error("ListPlayers: repository error for sport=%s: %v", sport, err)
		return nil, fmt.Errorf("%w: ListPlayers - repository error: %v", ErrInternal, err)
	}

	resp := &models.RosterResponse{Sport: sport}
	byGroup := make(map[string]*models.GroupRoster)
	for _, p := range players {
		gr, ok := byGroup[p.Group]
		if !ok {
			gr = &models.GroupRoster{Group: p.Group}
			byGroup[p.Group] = gr
		}
		gr.Total++
		if len(gr.Players) < displayLimit {
			gr.Players = append(gr.Players, *models.FromDomainPlayer(p))
		}
	}

	// Разделы идут в каноническом порядке групп, пустые пропускаем
	if sport.Grouped() {
		for _, g := range domain.FutsalGroups {
			if gr, ok := byGroup[g]; ok {
				resp.Groups = append(resp.Groups, *gr)
			}
		}
	} else if gr, ok := byGroup[""]; ok {
		resp.Groups = append(resp.Groups, *gr)
	}

	s.logger.Info("ListPlayers: sport=%s players=%d groups=%d", sport, len(players), len(resp.Groups))
	return resp, nil
}

func validatePartition(sport domain.Sport, group string) error {
	if !sport.IsValid() {
		return fmt.Errorf("%w: unknown sport %q", ErrInvalidInput, sport)
	}
	if sport.Grouped() {
		if !sport.IsValidGroup(group) {
			return fmt.Errorf("%w: unknown group %q", ErrInvalidInput, group)
		}
	} else if group != "" {
		return fmt.Errorf("%w: sport %s has no groups", ErrInvalidInput, sport)
	}
	return nil
}
