package register_player

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPhone возвращается, когда номер после нормализации не
	// является валидным мобильным номером
	ErrInvalidPhone = errors.New("register_player: invalid phone number")

	// ErrSlotNotFound возвращается, когда слот не найден или относится
	// к другому разделу
	ErrSlotNotFound = errors.New("register_player: slot not found")

	// ErrSlotExpired возвращается при попытке записи на прошедший слот
	ErrSlotExpired = errors.New("register_player: slot is expired")

	// ErrNotOnRoster возвращается, когда телефона нет в составе вида спорта
	ErrNotOnRoster = errors.New("register_player: phone is not on roster")

	// ErrDuplicateRegistration возвращается при повторной записи на слот
	ErrDuplicateRegistration = errors.New("register_player: already registered for this slot")

	// ErrCapacityFull возвращается, когда свободных мест не осталось
	ErrCapacityFull = errors.New("register_player: slot capacity is full")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("register_player: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("register_player: internal error")
)

// WrongGroupError возвращается, когда игрок состоит в другой группе
// футзала и пытается записаться на слот чужой группы
type WrongGroupError struct {
	OwnGroup string
}

func (e *WrongGroupError) Error() string {
	return fmt.Sprintf("register_player: player belongs to group %s", e.OwnGroup)
}
