// Package bot реализует диалоговый Telegram интерфейс записи на слоты.
// Вся доменная логика живет в сервисах и use case, бот только ведет
// диалог и переводит ошибки в понятные пользователю сообщения
package bot

import (
	"context"
	"errors"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/amirsdt/SCC-ReservationService/internal/config"
	"github.com/amirsdt/SCC-ReservationService/internal/domain"
	scheduleModels "github.com/amirsdt/SCC-ReservationService/internal/service/schedule/models"
	"github.com/amirsdt/SCC-ReservationService/internal/usecase/register_player"
)

// App Telegram бот записи на слоты
type App struct {
	bot *tgbotapi.BotAPI

	superAdmins  map[int64]bool
	viewerAdmins map[int64]bool

	rosterService   RosterService
	scheduleService ScheduleService
	reportsService  ReportsService
	registerUC      RegisterUseCase
	botUsers        BotUserRepository
	metrics         Metrics
	logger          Logger

	// Диалоги обрабатываются одной горутиной цикла обновлений,
	// поэтому карта сессий не требует синхронизации
	state map[int64]session
}

// New создает бота и проверяет токен через Telegram API
func New(
	cfg config.TelegramConfig,
	rosterService RosterService,
	scheduleService ScheduleService,
	reportsService ReportsService,
	registerUC RegisterUseCase,
	botUsers BotUserRepository,
	metrics Metrics,
	logger Logger,
) (*App, error) {
	b, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, err
	}
	b.Debug = cfg.Debug

	superAdmins := make(map[int64]bool, len(cfg.SuperAdmins))
	for _, id := range cfg.SuperAdmins {
		superAdmins[id] = true
	}
	viewerAdmins := make(map[int64]bool, len(cfg.ViewerAdmins))
	for _, id := range cfg.ViewerAdmins {
		viewerAdmins[id] = true
	}

	return &App{
		bot:             b,
		superAdmins:     superAdmins,
		viewerAdmins:    viewerAdmins,
		rosterService:   rosterService,
		scheduleService: scheduleService,
		reportsService:  reportsService,
		registerUC:      registerUC,
		botUsers:        botUsers,
		metrics:         metrics,
		logger:          logger,
		state:           map[int64]session{},
	}, nil
}

// Run запускает цикл обработки обновлений до отмены контекста
func (a *App) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := a.bot.GetUpdatesChan(u)
	a.logger.Info("bot: started as @%s", a.bot.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			a.bot.StopReceivingUpdates()
			return ctx.Err()
		case upd := <-updates:
			if upd.Message != nil {
				if err := a.handleMessage(ctx, upd.Message); err != nil {
					a.logger.Error("bot: handle message from %d: %v", upd.Message.From.ID, err)
				}
			} else if upd.CallbackQuery != nil {
				if err := a.handleCallback(ctx, upd.CallbackQuery); err != nil {
					a.logger.Error("bot: handle callback from %d: %v", upd.CallbackQuery.From.ID, err)
				}
			}
		}
	}
}

// SendText отправляет простое текстовое сообщение
func (a *App) SendText(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	_, err := a.bot.Send(msg)
	return err
}

// AdminIDs возвращает получателей административных рассылок
func (a *App) AdminIDs() []int64 {
	ids := make([]int64, 0, len(a.superAdmins)+len(a.viewerAdmins))
	for id := range a.superAdmins {
		ids = append(ids, id)
	}
	for id := range a.viewerAdmins {
		if !a.superAdmins[id] {
			ids = append(ids, id)
		}
	}
	return ids
}

func (a *App) isSuperAdmin(tgID int64) bool {
	return a.superAdmins[tgID]
}

func (a *App) isAdmin(tgID int64) bool {
	return a.superAdmins[tgID] || a.viewerAdmins[tgID]
}

func (a *App) handleMessage(ctx context.Context, m *tgbotapi.Message) error {
	tgID := m.From.ID
	txt := strings.TrimSpace(m.Text)

	a.rememberUser(ctx, m.From)

	if strings.HasPrefix(txt, "/") {
		return a.handleCommand(ctx, tgID, txt)
	}

	// Выбор вида спорта сбрасывает сессию безусловно
	if sport, ok := sportButtons[txt]; ok {
		return a.showSlots(ctx, tgID, sport)
	}

	st := a.state[tgID]
	if st.Stage == stageSlotChosen {
		return a.submitPhone(ctx, tgID, txt, st)
	}

	return a.showWelcome(tgID)
}

func (a *App) handleCallback(ctx context.Context, q *tgbotapi.CallbackQuery) error {
	tgID := q.From.ID

	cb := tgbotapi.NewCallback(q.ID, "")
	_, _ = a.bot.Request(cb)

	data := q.Data
	if !strings.HasPrefix(data, "slot:") {
		return nil
	}

	st := a.state[tgID]
	if st.Stage < stageSportChosen || !st.Sport.IsValid() {
		delete(a.state, tgID)
		return a.SendText(tgID, msgSessionReset)
	}

	slotID, group, ok := parseSlotCallback(data)
	if !ok || !st.Sport.IsValidGroup(group) {
		delete(a.state, tgID)
		return a.SendText(tgID, msgSessionReset)
	}

	st.Stage = stageSlotChosen
	st.Group = group
	st.SlotID = slotID
	a.state[tgID] = st

	return a.SendText(tgID, msgAskPhone)
}

func (a *App) showWelcome(tgID int64) error {
	msg := tgbotapi.NewMessage(tgID, msgWelcome)
	msg.ReplyMarkup = sportKeyboard()
	_, err := a.bot.Send(msg)
	return err
}

// showSlots показывает активные слоты вида спорта. Для футзала слоты
// всех групп идут одним списком, подписанные своей группой
func (a *App) showSlots(ctx context.Context, tgID int64, sport domain.Sport) error {
	a.state[tgID] = session{Stage: stageSportChosen, Sport: sport}

	slots, err := a.listActiveSlots(ctx, sport)
	if err != nil {
		a.logger.Error("bot: list slots for %s: %v", sport, err)
		return a.SendText(tgID, msgInternalError)
	}
	if len(slots) == 0 {
		return a.SendText(tgID, msgNoSlots)
	}

	msg := tgbotapi.NewMessage(tgID, msgChooseSlot)
	msg.ReplyMarkup = slotKeyboard(slots)
	_, err = a.bot.Send(msg)
	return err
}

// submitPhone завершает диалог попыткой записи. Отказы, которые можно
// исправить другим номером, оставляют пользователя на этапе ввода
// телефона; пропавший слот возвращает к выбору вида спорта
func (a *App) submitPhone(ctx context.Context, tgID int64, txt string, st session) error {
	resp, err := a.registerUC.Execute(ctx, &register_player.Request{
		Sport:    st.Sport,
		Group:    st.Group,
		SlotID:   st.SlotID,
		RawPhone: txt,
	})
	if err != nil {
		a.observeRejection(st.Sport, err)

		var groupErr *register_player.WrongGroupError
		switch {
		case errors.Is(err, register_player.ErrInvalidPhone):
			return a.SendText(tgID, msgInvalidPhone)
		case errors.Is(err, register_player.ErrSlotNotFound),
			errors.Is(err, register_player.ErrSlotExpired):
			delete(a.state, tgID)
			return a.SendText(tgID, msgSlotGone)
		case errors.Is(err, register_player.ErrNotOnRoster):
			return a.SendText(tgID, msgNotOnRoster)
		case errors.As(err, &groupErr):
			return a.SendText(tgID, formatWrongGroup(groupErr.OwnGroup))
		case errors.Is(err, register_player.ErrDuplicateRegistration):
			return a.SendText(tgID, msgDuplicate)
		case errors.Is(err, register_player.ErrCapacityFull):
			return a.SendText(tgID, msgCapacityFull)
		case errors.Is(err, register_player.ErrInvalidInput):
			delete(a.state, tgID)
			return a.SendText(tgID, msgSessionReset)
		default:
			return a.SendText(tgID, msgInternalError)
		}
	}

	delete(a.state, tgID)
	a.metrics.ObserveRegistration(string(st.Sport), "success")
	return a.SendText(tgID, formatSuccess(resp))
}

func (a *App) observeRejection(sport domain.Sport, err error) {
	outcome := "internal_error"
	var groupErr *register_player.WrongGroupError
	switch {
	case errors.Is(err, register_player.ErrInvalidPhone):
		outcome = "invalid_phone"
	case errors.Is(err, register_player.ErrSlotNotFound),
		errors.Is(err, register_player.ErrSlotExpired):
		outcome = "slot_gone"
	case errors.Is(err, register_player.ErrNotOnRoster):
		outcome = "not_on_roster"
	case errors.As(err, &groupErr):
		outcome = "wrong_group"
	case errors.Is(err, register_player.ErrDuplicateRegistration):
		outcome = "duplicate"
	case errors.Is(err, register_player.ErrCapacityFull):
		outcome = "capacity_full"
	}
	a.metrics.ObserveRegistration(string(sport), outcome)
}

func (a *App) listActiveSlots(ctx context.Context, sport domain.Sport) ([]scheduleModels.SlotResponse, error) {
	if !sport.Grouped() {
		return a.scheduleService.ListActive(ctx, sport, "")
	}

	var all []scheduleModels.SlotResponse
	for _, g := range domain.FutsalGroups {
		slots, err := a.scheduleService.ListActive(ctx, sport, g)
		if err != nil {
			return nil, err
		}
		all = append(all, slots...)
	}
	return all, nil
}

func (a *App) rememberUser(ctx context.Context, from *tgbotapi.User) {
	if from == nil {
		return
	}
	err := a.botUsers.Upsert(ctx, &domain.BotUser{
		UserID:    from.ID,
		FirstName: from.FirstName,
		LastName:  from.LastName,
		Username:  from.UserName,
		Language:  from.LanguageCode,
	})
	if err != nil {
		a.logger.Warn("bot: remember user %d: %v", from.ID, err)
	}
}
