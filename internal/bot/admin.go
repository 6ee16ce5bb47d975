package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/amirsdt/SCC-ReservationService/internal/domain"
	"github.com/amirsdt/SCC-ReservationService/internal/service/roster"
	rosterModels "github.com/amirsdt/SCC-ReservationService/internal/service/roster/models"
	"github.com/amirsdt/SCC-ReservationService/internal/service/schedule"
	scheduleModels "github.com/amirsdt/SCC-ReservationService/internal/service/schedule/models"
)

var sportArgs = map[string]domain.Sport{
	"futsal":     domain.SportFutsal,
	"basketball": domain.SportBasketball,
	"volleyball": domain.SportVolleyball,
}

// handleCommand разбирает команды. Команды мутации доступны только
// супер-администраторам, команды просмотра - всем администраторам
func (a *App) handleCommand(ctx context.Context, tgID int64, txt string) error {
	fields := strings.Fields(txt)
	cmd := strings.ToLower(fields[0])
	args := fields[1:]

	switch cmd {
	case "/start":
		delete(a.state, tgID)
		return a.showWelcome(tgID)
	case "/help":
		if a.isAdmin(tgID) {
			return a.SendText(tgID, msgAdminHelp)
		}
		return a.showWelcome(tgID)
	}

	if !a.isAdmin(tgID) {
		return a.SendText(tgID, msgAdminDenied)
	}

	switch cmd {
	case "/show_players":
		return a.cmdShowPlayers(ctx, tgID, args)
	case "/show_times":
		return a.cmdShowTimes(ctx, tgID, args)
	case "/find_player":
		return a.cmdFindPlayer(ctx, tgID, args)
	case "/today":
		return a.cmdToday(ctx, tgID)
	}

	if !a.isSuperAdmin(tgID) {
		return a.SendText(tgID, msgAdminDenied)
	}

	switch cmd {
	case "/add_player":
		return a.cmdAddPlayer(ctx, tgID, args)
	case "/remove_player":
		return a.cmdRemovePlayer(ctx, tgID, args)
	case "/add_time":
		return a.cmdAddTime(ctx, tgID, args)
	case "/remove_time":
		return a.cmdRemoveTime(ctx, tgID, args)
	default:
		return a.SendText(tgID, msgAdminUnknown)
	}
}

// parsePartitionArgs снимает с начала args вид спорта и, для футзала,
// букву группы. Возвращает остаток аргументов
func parsePartitionArgs(args []string) (domain.Sport, string, []string, bool) {
	if len(args) == 0 {
		return "", "", nil, false
	}
	sport, ok := sportArgs[strings.ToLower(args[0])]
	if !ok {
		return "", "", nil, false
	}
	rest := args[1:]

	if !sport.Grouped() {
		return sport, "", rest, true
	}
	if len(rest) == 0 {
		return "", "", nil, false
	}
	group := strings.ToUpper(rest[0])
	if !sport.IsValidGroup(group) {
		return "", "", nil, false
	}
	return sport, group, rest[1:], true
}

func parseSlotCallback(data string) (int64, string, bool) {
	parts := strings.SplitN(data, ":", 3)
	if len(parts) != 3 {
		return 0, "", false
	}
	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || id <= 0 {
		return 0, "", false
	}
	return id, parts[2], true
}

func (a *App) cmdAddPlayer(ctx context.Context, tgID int64, args []string) error {
	sport, group, rest, ok := parsePartitionArgs(args)
	if !ok || len(rest) < 2 {
		return a.SendText(tgID, "استفاده: /add_player <sport> [group] <phone> <name>")
	}

	resp, err := a.rosterService.AddPlayer(ctx, &rosterModels.AddPlayerRequest{
		Sport: sport,
		Group: group,
		Phone: rest[0],
		Name:  strings.Join(rest[1:], " "),
	})
	if err != nil {
		return a.SendText(tgID, rosterErrorText(err))
	}

	text := fmt.Sprintf("✅ بازیکن %s با شماره %s اضافه شد.", resp.Name, resp.Phone)
	return a.SendText(tgID, text)
}

func (a *App) cmdRemovePlayer(ctx context.Context, tgID int64, args []string) error {
	sport, group, rest, ok := parsePartitionArgs(args)
	if !ok || len(rest) != 1 {
		return a.SendText(tgID, "استفاده: /remove_player <sport> [group] <phone>")
	}

	resp, err := a.rosterService.RemovePlayer(ctx, &rosterModels.RemovePlayerRequest{
		Sport: sport,
		Group: group,
		Phone: rest[0],
	})
	if err != nil {
		return a.SendText(tgID, rosterErrorText(err))
	}

	text := fmt.Sprintf("✅ بازیکن %s حذف شد.", resp.Name)
	return a.SendText(tgID, text)
}

func (a *App) cmdAddTime(ctx context.Context, tgID int64, args []string) error {
	sport, group, rest, ok := parsePartitionArgs(args)
	if !ok || len(rest) != 4 {
		return a.SendText(tgID, "استفاده: /add_time <sport> [group] <date> <start> <end> <capacity>")
	}

	capacity, err := strconv.Atoi(rest[3])
	if err != nil {
		return a.SendText(tgID, "❌ ظرفیت باید عدد باشد.")
	}

	resp, err := a.scheduleService.AddSlot(ctx, &scheduleModels.AddSlotRequest{
		Sport:     sport,
		Group:     group,
		Date:      rest[0],
		StartTime: rest[1],
		EndTime:   rest[2],
		Capacity:  capacity,
	})
	if err != nil {
		return a.SendText(tgID, scheduleErrorText(err))
	}

	text := fmt.Sprintf("✅ سانس %s از %s تا %s با ظرفیت %d اضافه شد.",
		resp.DateJalali, resp.StartTime, resp.EndTime, resp.Capacity)
	return a.SendText(tgID, text)
}

func (a *App) cmdRemoveTime(ctx context.Context, tgID int64, args []string) error {
	sport, group, rest, ok := parsePartitionArgs(args)
	if !ok || len(rest) != 1 {
		return a.SendText(tgID, "استفاده: /remove_time <sport> [group] <position>")
	}

	position, err := strconv.Atoi(rest[0])
	if err != nil {
		return a.SendText(tgID, "❌ شماره سانس باید عدد باشد.")
	}

	resp, err := a.scheduleService.RemoveSlotAt(ctx, sport, group, position)
	if err != nil {
		return a.SendText(tgID, scheduleErrorText(err))
	}

	text := fmt.Sprintf("✅ سانس %s از %s تا %s حذف شد.", resp.DateJalali, resp.StartTime, resp.EndTime)
	return a.SendText(tgID, text)
}

func (a *App) cmdShowPlayers(ctx context.Context, tgID int64, args []string) error {
	if len(args) != 1 {
		return a.SendText(tgID, "استفاده: /show_players <sport>")
	}
	sport, ok := sportArgs[strings.ToLower(args[0])]
	if !ok {
		return a.SendText(tgID, "❌ رشته نامعتبر است.")
	}

	resp, err := a.rosterService.ListPlayers(ctx, sport)
	if err != nil {
		a.logger.Error("bot: show players for %s: %v", sport, err)
		return a.SendText(tgID, msgInternalError)
	}
	return a.SendText(tgID, formatRoster(resp))
}

func (a *App) cmdShowTimes(ctx context.Context, tgID int64, args []string) error {
	if len(args) != 1 {
		return a.SendText(tgID, "استفاده: /show_times <sport>")
	}
	sport, ok := sportArgs[strings.ToLower(args[0])]
	if !ok {
		return a.SendText(tgID, "❌ رشته نامعتبر است.")
	}

	resp, err := a.scheduleService.ListAll(ctx, sport)
	if err != nil {
		a.logger.Error("bot: show times for %s: %v", sport, err)
		return a.SendText(tgID, msgInternalError)
	}
	return a.SendText(tgID, formatSchedule(resp))
}

// cmdFindPlayer ищет игрока по номеру во всех группах вида спорта.
// Для футзала группа заранее неизвестна, поэтому команда принимает
// только вид спорта и номер
func (a *App) cmdFindPlayer(ctx context.Context, tgID int64, args []string) error {
	if len(args) != 2 {
		return a.SendText(tgID, "استفاده: /find_player <sport> <phone>")
	}
	sport, ok := sportArgs[strings.ToLower(args[0])]
	if !ok {
		return a.SendText(tgID, "❌ رشته نامعتبر است.")
	}

	resp, err := a.rosterService.FindOwner(ctx, sport, args[1])
	if err != nil {
		return a.SendText(tgID, rosterErrorText(err))
	}
	return a.SendText(tgID, formatPlayer(resp))
}

func (a *App) cmdToday(ctx context.Context, tgID int64) error {
	report, err := a.reportsService.ListRegistrations(ctx)
	if err != nil {
		a.logger.Error("bot: registrations report: %v", err)
		return a.SendText(tgID, msgInternalError)
	}
	return a.SendText(tgID, formatRegistrations(report))
}

func rosterErrorText(err error) string {
	var groupErr *roster.PlayerInOtherGroupError
	switch {
	case errors.Is(err, roster.ErrInvalidPhone):
		return "❌ شماره موبایل نامعتبر است."
	case errors.Is(err, roster.ErrPlayerExists):
		return "❌ این بازیکن قبلاً ثبت شده است."
	case errors.As(err, &groupErr):
		return fmt.Sprintf("❌ این بازیکن قبلاً در گروه %s ثبت شده است.", groupErr.Group)
	case errors.Is(err, roster.ErrPlayerNotFound):
		return "❌ بازیکنی با این شماره پیدا نشد."
	case errors.Is(err, roster.ErrInvalidInput):
		return "❌ ورودی نامعتبر است."
	default:
		return msgInternalError
	}
}

func scheduleErrorText(err error) string {
	switch {
	case errors.Is(err, schedule.ErrInvalidDate):
		return "❌ تاریخ نامعتبر است. فرمت: YYYY-MM-DD یا YYYY/MM/DD"
	case errors.Is(err, schedule.ErrPastDate):
		return "❌ تاریخ گذشته است."
	case errors.Is(err, schedule.ErrInvalidTimeRange):
		return "❌ بازه زمانی نامعتبر است. فرمت ساعت: HH:MM"
	case errors.Is(err, schedule.ErrInvalidCapacity):
		return "❌ ظرفیت نامعتبر است."
	case errors.Is(err, schedule.ErrSlotIndexOutOfRange):
		return "❌ سانسی با این شماره وجود ندارد."
	case errors.Is(err, schedule.ErrInvalidInput):
		return "❌ ورودی نامعتبر است."
	default:
		return msgInternalError
	}
}
