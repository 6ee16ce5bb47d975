package bot

import (
	"fmt"
	"strings"

	"github.com/amirsdt/SCC-ReservationService/internal/domain"
	reportsModels "github.com/amirsdt/SCC-ReservationService/internal/service/reports/models"
	rosterModels "github.com/amirsdt/SCC-ReservationService/internal/service/roster/models"
	scheduleModels "github.com/amirsdt/SCC-ReservationService/internal/service/schedule/models"
	"github.com/amirsdt/SCC-ReservationService/internal/usecase/register_player"
)

// Тексты для пользователей на персидском, как их видит аудитория
// спортивного комплекса
const (
	msgWelcome = "سلام! به ربات رزرو سانس مجموعه ورزشی خوش آمدید 🏟\nلطفاً رشته ورزشی خود را انتخاب کنید:"

	msgChooseSlot    = "لطفاً سانس مورد نظر خود را انتخاب کنید:"
	msgNoSlots       = "در حال حاضر سانس فعالی برای این رشته وجود ندارد."
	msgAskPhone      = "لطفاً شماره موبایل خود را ارسال کنید:"
	msgInvalidPhone  = "❌ شماره موبایل نامعتبر است. شماره باید ۱۱ رقم و با ۰۹ شروع شود. دوباره تلاش کنید:"
	msgSlotGone      = "❌ این سانس دیگر در دسترس نیست. لطفاً دوباره رشته را انتخاب کنید."
	msgNotOnRoster   = "❌ شماره شما در لیست بازیکنان این رشته ثبت نشده است. با مدیریت تماس بگیرید."
	msgDuplicate     = "❌ شما قبلاً در این سانس ثبت‌نام کرده‌اید."
	msgCapacityFull  = "❌ ظرفیت این سانس تکمیل شده است."
	msgSessionReset  = "لطفاً از ابتدا شروع کنید. /start"
	msgInternalError = "⚠️ خطایی رخ داد. لطفاً کمی بعد دوباره تلاش کنید."

	msgAdminDenied  = "شما دسترسی مدیریت ندارید."
	msgAdminUnknown = "دستور ناشناخته. /help را ببینید."
)

const msgAdminHelp = `دستورهای مدیریت:
/add_player <sport> [group] <phone> <name> - افزودن بازیکن
/remove_player <sport> [group] <phone> - حذف بازیکن
/add_time <sport> [group] <date> <start> <end> <capacity> - افزودن سانس
/remove_time <sport> [group] <position> - حذف سانس
/show_players <sport> - نمایش بازیکنان
/show_times <sport> - نمایش سانس‌ها
/find_player <sport> <phone> - جستجوی بازیکن
/today - لیست ثبت‌نام‌ها

رشته‌ها: futsal | basketball | volleyball
گروه فقط برای فوتسال: A تا J
تاریخ: YYYY-MM-DD میلادی یا YYYY/MM/DD شمسی`

// Подписи кнопок выбора вида спорта
const (
	buttonFutsal     = "⚽ فوتسال"
	buttonBasketball = "🏀 بسکتبال"
	buttonVolleyball = "🏐 والیبال"
)

var sportButtons = map[string]domain.Sport{
	buttonFutsal:     domain.SportFutsal,
	buttonBasketball: domain.SportBasketball,
	buttonVolleyball: domain.SportVolleyball,
}

var sportNames = map[domain.Sport]string{
	domain.SportFutsal:     "فوتسال",
	domain.SportBasketball: "بسکتبال",
	domain.SportVolleyball: "والیبال",
}

func sportName(sport domain.Sport) string {
	if name, ok := sportNames[sport]; ok {
		return name
	}
	return string(sport)
}

// slotLabel подпись слота на инлайн-кнопке
func slotLabel(s *scheduleModels.SlotResponse) string {
	var b strings.Builder
	if s.Group != "" {
		fmt.Fprintf(&b, "گروه %s | ", s.Group)
	}
	fmt.Fprintf(&b, "%s | %s تا %s | ظرفیت %d", s.DateJalali, s.StartTime, s.EndTime, s.Capacity)
	return b.String()
}

// formatSuccess подтверждение успешной записи
func formatSuccess(resp *register_player.Response) string {
	var b strings.Builder
	b.WriteString("✅ ثبت‌نام شما با موفقیت انجام شد!\n")
	fmt.Fprintf(&b, "نام: %s\n", resp.PlayerName)
	fmt.Fprintf(&b, "رشته: %s\n", sportName(resp.Sport))
	if resp.Group != "" {
		fmt.Fprintf(&b, "گروه: %s\n", resp.Group)
	}
	fmt.Fprintf(&b, "تاریخ: %s\n", resp.DateJalali)
	fmt.Fprintf(&b, "ساعت: %s تا %s", resp.StartTime, resp.EndTime)
	return b.String()
}

// formatWrongGroup отказ с указанием группы, в которой состоит игрок
func formatWrongGroup(ownGroup string) string {
	return fmt.Sprintf("❌ شما عضو گروه %s هستید و فقط می‌توانید سانس‌های همان گروه را رزرو کنید.", ownGroup)
}

// formatRoster состав вида спорта для /show_players
func formatRoster(resp *rosterModels.RosterResponse) string {
	if len(resp.Groups) == 0 {
		return fmt.Sprintf("بازیکنی برای %s ثبت نشده است.", sportName(resp.Sport))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "بازیکنان %s:\n", sportName(resp.Sport))
	for _, gr := range resp.Groups {
		if gr.Group != "" {
			fmt.Fprintf(&b, "\nگروه %s (%d نفر):\n", gr.Group, gr.Total)
		} else {
			fmt.Fprintf(&b, "\n%d نفر:\n", gr.Total)
		}
		for i, p := range gr.Players {
			fmt.Fprintf(&b, "%d. %s - %s\n", i+1, p.Name, p.Phone)
		}
		if gr.Total > len(gr.Players) {
			fmt.Fprintf(&b, "... و %d نفر دیگر\n", gr.Total-len(gr.Players))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// formatSchedule расписание вида спорта для /show_times
func formatSchedule(resp *scheduleModels.ScheduleResponse) string {
	if len(resp.Groups) == 0 {
		return fmt.Sprintf("سانسی برای %s ثبت نشده است.", sportName(resp.Sport))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "سانس‌های %s:\n", sportName(resp.Sport))
	for _, gr := range resp.Groups {
		if gr.Group != "" {
			fmt.Fprintf(&b, "\nگروه %s:\n", gr.Group)
		} else {
			b.WriteString("\n")
		}
		for _, s := range gr.Slots {
			fmt.Fprintf(&b, "%d. %s | %s تا %s | ظرفیت %d\n",
				s.Position, s.DateJalali, s.StartTime, s.EndTime, s.Capacity)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// formatPlayer карточка игрока для /find_player
func formatPlayer(resp *rosterModels.PlayerResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "بازیکن: %s\n", resp.Name)
	if resp.Group != "" {
		fmt.Fprintf(&b, "گروه: %s\n", resp.Group)
	}
	fmt.Fprintf(&b, "شماره: %s", resp.Phone)
	return b.String()
}

// formatRegistrations все текущие регистрации для /today. Записи на
// будущие даты тоже показываются, поэтому дата идет в строке слота
func formatRegistrations(report *reportsModels.RegistrationsReport) string {
	if report.Empty() {
		return "هیچ ثبت‌نامی وجود ندارد."
	}

	var b strings.Builder
	b.WriteString("لیست ثبت‌نام‌ها:\n")
	for _, bucket := range report.Buckets {
		fmt.Fprintf(&b, "\n%s", sportName(bucket.Sport))
		if bucket.Group != "" {
			fmt.Fprintf(&b, " - گروه %s", bucket.Group)
		}
		fmt.Fprintf(&b, " | %s | %s تا %s (%d/%d):\n",
			bucket.DateJalali, bucket.StartTime, bucket.EndTime, len(bucket.Names), bucket.Capacity)
		for i, name := range bucket.Names {
			fmt.Fprintf(&b, "%d. %s\n", i+1, name)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatDailySummary ночная сводка для администраторов. Используется
// планировщиком отчетов
func FormatDailySummary(summary *reportsModels.DailySummary, swept int64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📊 گزارش روزانه %s\n", summary.DateJalali)
	for _, t := range summary.Totals {
		fmt.Fprintf(&b, "%s", sportName(t.Sport))
		if t.Group != "" {
			fmt.Fprintf(&b, " گروه %s", t.Group)
		}
		fmt.Fprintf(&b, ": %d\n", t.Count)
	}
	fmt.Fprintf(&b, "مجموع: %d\n", summary.Grand)
	fmt.Fprintf(&b, "سانس‌های منقضی حذف‌شده: %d", swept)
	return b.String()
}
