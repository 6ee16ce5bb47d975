// Package botuser хранит пользователей Telegram, когда-либо писавших
// боту. Данные используются только для операционной статистики
package botuser

import (
	"context"
	"errors"
	"fmt"

	"github.com/amirsdt/SCC-ReservationService/internal/domain"
	"github.com/amirsdt/SCC-ReservationService/pkg/psqlbuilder"
	"github.com/amirsdt/SCC-ReservationService/pkg/txmanager"
)

var (
	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("botuser.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("botuser.repository: failed to execute query")
)

// Repository репозиторий пользователей бота
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория пользователей бота
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Upsert сохраняет пользователя, обновляя имена при повторном /start
func (r *Repository) Upsert(ctx context.Context, u *domain.BotUser) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bot_users").
		Columns("user_id", "first_name", "last_name", "username", "language").
		Values(u.UserID, u.FirstName, u.LastName, u.Username, u.Language).
		Suffix("ON CONFLICT (user_id) DO UPDATE SET first_name = EXCLUDED.first_name, last_name = EXCLUDED.last_name, username = EXCLUDED.username, language = EXCLUDED.language").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}
	return nil
}
