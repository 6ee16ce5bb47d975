package schedule

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvalidDate возвращается, когда дату не удалось разобрать
	// ни как григорианскую, ни как джалали
	ErrInvalidDate = errors.New("invalid date")

	// ErrPastDate возвращается при попытке создать слот в прошлом
	ErrPastDate = errors.New("slot date is in the past")

	// ErrInvalidTimeRange возвращается при некорректном временном диапазоне
	ErrInvalidTimeRange = errors.New("invalid time range")

	// ErrInvalidCapacity возвращается при вместимости вне допустимых границ
	ErrInvalidCapacity = errors.New("invalid capacity")

	// ErrSlotIndexOutOfRange возвращается, когда номер слота не
	// соответствует ни одной позиции в расписании раздела
	ErrSlotIndexOutOfRange = errors.New("slot index out of range")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("schedule service: internal error")
)
