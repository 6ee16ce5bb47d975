package registration

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

// Repository репозиторий регистраций на слоты
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория регистраций
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create записывает участника на слот.
// Ограничение UNIQUE(slot_id, phone) - последний рубеж против дублей
func (r *Repository) Create(ctx context.Context, reg *domain.Registration) (*domain.Registration, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("registrations").
		Columns("slot_id", "phone", "name").
		Values(reg.SlotID, reg.Phone, reg.Name).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&reg.ID, &createdAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, ErrDuplicateRegistration
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	reg.CreatedAt = createdAt.Time
	return reg, nil
}

// ExistsBySlotAndPhone проверяет, записан ли телефон на слот
func (r *Repository) ExistsBySlotAndPhone(ctx context.Context, slotID int64, phone string) (bool, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("registrations").
		Where(squirrel.Eq{"slot_id": slotID}).
		Where(squirrel.Eq{"phone": phone}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: ExistsBySlotAndPhone - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: ExistsBySlotAndPhone - scan: %v", ErrScanRow, err)
	}
	return true, nil
}

// CountBySlot возвращает количество регистраций на слот
func (r *Repository) CountBySlot(ctx context.Context, slotID int64) (int, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("registrations").
		Where(squirrel.Eq{"slot_id": slotID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountBySlot - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountBySlot - scan: %v", ErrScanRow, err)
	}
	return count, nil
}

// ListBySlot возвращает регистрации слота в порядке записи
func (r *Repository) ListBySlot(ctx context.Context, slotID int64) ([]*domain.Registration, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "slot_id", "phone", "name", "created_at").
		From("registrations").
		Where(squirrel.Eq{"slot_id": slotID}).
		OrderBy("created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListBySlot - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBySlot - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	regs := make([]*domain.Registration, 0)
	for rows.Next() {
		var reg domain.Registration
		var createdAt sql.NullTime
		if err := rows.Scan(&reg.ID, &reg.SlotID, &reg.Phone, &reg.Name, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: ListBySlot - scan row: %v", ErrScanRow, err)
		}
		reg.CreatedAt = createdAt.Time
		regs = append(regs, &reg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBySlot - rows error: %v", ErrScanRow, err)
	}
	return regs, nil
}

// CountByPartition возвращает количество регистраций по разделам
// (спорт, группа) для ночного отчета
func (r *Repository) CountByPartition(ctx context.Context) ([]*domain.PartitionCount, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("s.sport", "s.group_name", "COUNT(*)").
		From("registrations r").
		Join("slots s ON s.id = r.slot_id").
		GroupBy("s.sport", "s.group_name").
		OrderBy("s.sport ASC", "s.group_name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CountByPartition - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CountByPartition - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	counts := make([]*domain.PartitionCount, 0)
	for rows.Next() {
		var pc domain.PartitionCount
		if err := rows.Scan(&pc.Sport, &pc.Group, &pc.Count); err != nil {
			return nil, fmt.Errorf("%w: CountByPartition - scan row: %v", ErrScanRow, err)
		}
		counts = append(counts, &pc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CountByPartition - rows error: %v", ErrScanRow, err)
	}
	return counts, nil
}
