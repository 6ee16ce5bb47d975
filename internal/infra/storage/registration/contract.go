package registration

import "github.com/amirsdt/SCC-ReservationService/pkg/txmanager"

// Переиспользуем интерфейсы из txmanager для работы с БД
type DBExecutor = txmanager.DBExecutor
