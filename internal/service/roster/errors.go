package roster

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvalidPhone возвращается при некорректном номере телефона
	ErrInvalidPhone = errors.New("invalid phone number")

	// ErrPlayerExists возвращается, когда игрок уже есть в составе
	ErrPlayerExists = errors.New("player already on roster")

	// ErrPlayerNotFound возвращается, когда игрок не найден в составе
	ErrPlayerNotFound = errors.New("player not found on roster")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("roster service: internal error")
)

// PlayerInOtherGroupError возвращается при попытке добавить игрока
// во вторую группу того же вида спорта. Группы взаимоисключающие
type PlayerInOtherGroupError struct {
	Group string
}

func (e *PlayerInOtherGroupError) Error() string {
	return fmt.Sprintf("player already belongs to group %s", e.Group)
}
