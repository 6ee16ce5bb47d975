package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	scheduleModels "github.com/amirsdt/SCC-ReservationService/internal/service/schedule/models"
)

// sportKeyboard постоянная клавиатура выбора вида спорта
func sportKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(buttonFutsal),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(buttonBasketball),
			tgbotapi.NewKeyboardButton(buttonVolleyball),
		),
	)
	kb.ResizeKeyboard = true
	return kb
}

// slotKeyboard инлайн-клавиатура выбора слота. В callback data уходит
// идентификатор слота и его группа, вид спорта уже лежит в сессии
func slotKeyboard(slots []scheduleModels.SlotResponse) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(slots))
	for i := range slots {
		s := &slots[i]
		data := fmt.Sprintf("slot:%d:%s", s.ID, s.Group)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(slotLabel(s), data),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
