package registration

import "errors"

var (
	// ErrDuplicateRegistration возвращается при повторной записи одного
	// телефона на тот же слот
	ErrDuplicateRegistration = errors.New("registration.repository: duplicate registration")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("registration.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("registration.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("registration.repository: failed to scan row")
)
