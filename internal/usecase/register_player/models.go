package register_player

import (
	"time"

	"github.com/amirsdt/SCC-ReservationService/internal/domain"
	"github.com/amirsdt/SCC-ReservationService/pkg/types"
)

// Request модель запроса на запись игрока на слот
type Request struct {
	Sport    domain.Sport // Вид спорта, выбранный в диалоге
	Group    string       // Группа (пустая для баскетбола и волейбола)
	SlotID   int64        // Идентификатор выбранного слота
	RawPhone string       // Номер телефона как его ввел пользователь
}

// Response модель ответа с подтвержденной записью
type Response struct {
	RegistrationID int64
	PlayerName     string
	Sport          domain.Sport
	Group          string
	Date           time.Time
	DateJalali     string
	StartTime      types.TimeString
	EndTime        types.TimeString
}
