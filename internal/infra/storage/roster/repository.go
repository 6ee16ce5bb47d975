package roster

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/amirsdt/SCC-ReservationService/internal/domain"
	"github.com/amirsdt/SCC-ReservationService/pkg/psqlbuilder"
	"github.com/amirsdt/SCC-ReservationService/pkg/txmanager"
)

const uniqueViolation = "23505"

// Repository репозиторий реестра игроков
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория реестра
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create добавляет игрока в реестр.
// Первичный ключ (sport, phone) гарантирует, что телефон уникален в
// рамках вида спорта - для футзала это дает эксклюзивность групп
func (r *Repository) Create(ctx context.Context, player *domain.Player) (*domain.Player, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("players").
		Columns("sport", "phone", "group_name", "name").
		Values(player.Sport, player.Phone, player.Group, player.Name).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, ErrPlayerExists
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	player.CreatedAt = createdAt.Time
	return player, nil
}

// GetBySportAndPhone находит игрока по виду спорта и телефону.
// Для футзала возвращает запись независимо от группы - вызывающая
// сторона видит, какой группе принадлежит телефон
func (r *Repository) GetBySportAndPhone(ctx context.Context, sport domain.Sport, phone string) (*domain.Player, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("sport", "phone", "group_name", "name", "created_at").
		From("players").
		Where(squirrel.Eq{"sport": sport}).
		Where(squirrel.Eq{"phone": phone}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySportAndPhone - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanPlayer(executor.QueryRowContext(ctx, query, args...), "GetBySportAndPhone")
}

// Delete удаляет игрока из реестра. Для сгруппированного спорта
// дополнительно сверяет группу
func (r *Repository) Delete(ctx context.Context, sport domain.Sport, group, phone string) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	deleteBuilder := psqlbuilder.Delete("players").
		Where(squirrel.Eq{"sport": sport}).
		Where(squirrel.Eq{"phone": phone})
	if sport.Grouped() {
		deleteBuilder = deleteBuilder.Where(squirrel.Eq{"group_name": group})
	}

	query, args, err := deleteBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrPlayerNotFound
	}
	return nil
}

// ListBySport возвращает всех игроков вида спорта, упорядоченных по
// группе и имени
func (r *Repository) ListBySport(ctx context.Context, sport domain.Sport) ([]*domain.Player, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("sport", "phone", "group_name", "name", "created_at").
		From("players").
		Where(squirrel.Eq{"sport": sport}).
		OrderBy("group_name ASC", "name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListBySport - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBySport - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	players := make([]*domain.Player, 0)
	for rows.Next() {
		var player domain.Player
		var createdAt sql.NullTime
		if err := rows.Scan(&player.Sport, &player.Phone, &player.Group, &player.Name, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: ListBySport - scan row: %v", ErrScanRow, err)
		}
		player.CreatedAt = createdAt.Time
		players = append(players, &player)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBySport - rows error: %v", ErrScanRow, err)
	}
	return players, nil
}

func (r *Repository) scanPlayer(row *sql.Row, op string) (*domain.Player, error) {
	var player domain.Player
	var createdAt sql.NullTime

	err := row.Scan(&player.Sport, &player.Phone, &player.Group, &player.Name, &createdAt)
	if err == sql.ErrNoRows {
		return nil, ErrPlayerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan player: %v", ErrScanRow, op, err)
	}

	player.CreatedAt = createdAt.Time
	return &player, nil
}
