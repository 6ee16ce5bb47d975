package bot

import "github.com/amirsdt/SCC-ReservationService/internal/domain"

// stage этап диалога записи на санс
type stage int

const (
	stageIdle stage = iota
	stageSportChosen
	stageSlotChosen
)

// session состояние диалога одного пользователя. Живет только в памяти,
// перезапуск бота сбрасывает все диалоги
type session struct {
	Stage  stage
	Sport  domain.Sport
	Group  string
	SlotID int64
}
