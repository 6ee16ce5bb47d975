package roster

import "errors"

var (
	// ErrPlayerNotFound возвращается, когда игрок не найден в реестре
	ErrPlayerNotFound = errors.New("roster.repository: player not found")

	// ErrPlayerExists возвращается при нарушении уникальности телефона
	// в рамках одного вида спорта
	ErrPlayerExists = errors.New("roster.repository: player already exists")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("roster.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("roster.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("roster.repository: failed to scan row")
)
