package slot

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/amirsdt/SCC-ReservationService/internal/domain"
	"github.com/amirsdt/SCC-ReservationService/pkg/psqlbuilder"
	"github.com/amirsdt/SCC-ReservationService/pkg/txmanager"
)

// Repository репозиторий календаря слотов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create добавляет слот в календарь и возвращает его с присвоенным id.
// Порядок внутри раздела определяется сортировкой по (slot_date, id),
// поэтому слоты одной даты сохраняют порядок вставки
func (r *Repository) Create(ctx context.Context, s *domain.Slot) (*domain.Slot, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("slots").
		Columns("sport", "group_name", "slot_date", "start_time", "end_time", "capacity").
		Values(s.Sport, s.Group, s.Date, s.StartTime, s.EndTime, s.Capacity).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&s.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	s.CreatedAt = createdAt.Time
	return s, nil
}

// GetByID получает слот по id.
// Внутри транзакции блокирует строку слота (FOR UPDATE), чтобы
// конкурентные проверки вместимости выполнялись последовательно
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Slot, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns()...).
		From("slots").
		Where(squirrel.Eq{"id": id})

	if txmanager.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.Slot
	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID, &s.Sport, &s.Group, &s.Date, &s.StartTime, &s.EndTime, &s.Capacity, &createdAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan slot: %v", ErrScanRow, err)
	}

	s.CreatedAt = createdAt.Time
	return &s, nil
}

// ListByPartition возвращает все слоты раздела в порядке возрастания
// даты; слоты одной даты идут в порядке создания
func (r *Repository) ListByPartition(ctx context.Context, sport domain.Sport, group string) ([]*domain.Slot, error) {
	return r.list(ctx, "ListByPartition", squirrel.Eq{"sport": sport, "group_name": group}, nil)
}

// ListActive возвращает слоты раздела с датой не раньше today
func (r *Repository) ListActive(ctx context.Context, sport domain.Sport, group string, today time.Time) ([]*domain.Slot, error) {
	return r.list(ctx, "ListActive",
		squirrel.Eq{"sport": sport, "group_name": group},
		squirrel.GtOrEq{"slot_date": today},
	)
}

// Delete удаляет слот; регистрации удаляются каскадно (FK)
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("slots").
		Where(squirrel.Eq{"id": id}).
		ToSql()
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
		return ErrSlotNotFound
	}
	return nil
}

// DeleteExpired удаляет все слоты раздела с датой строго раньше today
// и возвращает количество удаленных; регистрации удаляются каскадно
func (r *Repository) DeleteExpired(ctx context.Context, sport domain.Sport, group string, today time.Time) (int64, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("slots").
		Where(squirrel.Eq{"sport": sport, "group_name": group}).
		Where(squirrel.Lt{"slot_date": today}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpired - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpired - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpired - get rows affected: %v", ErrExecQuery, err)
	}
	return rowsAffected, nil
}

func (r *Repository) list(ctx context.Context, op string, conds ...squirrel.Sqlizer) ([]*domain.Slot, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns()...).
		From("slots").
		OrderBy("slot_date ASC", "id ASC")
	for _, cond := range conds {
		if cond != nil {
			selectBuilder = selectBuilder.Where(cond)
		}
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	slots := make([]*domain.Slot, 0)
	for rows.Next() {
		var s domain.Slot
		var createdAt sql.NullTime
		if err := rows.Scan(&s.ID, &s.Sport, &s.Group, &s.Date, &s.StartTime, &s.EndTime, &s.Capacity, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
		s.CreatedAt = createdAt.Time
		slots = append(slots, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}
	return slots, nil
}

func slotColumns() []string {
	return []string{"id", "sport", "group_name", "slot_date", "start_time", "end_time", "capacity", "created_at"}
}
