package registration

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirsdt/SCC-ReservationService/internal/domain"
)

func newMock(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

func TestCreate(t *testing.T) {
	repo, mock := newMock(t)
	createdAt := time.Date(2026, 2, 11, 19, 0, 0, 0, time.UTC)

	mock.ExpectQuery("INSERT INTO registrations").
		WithArgs(int64(5), "09120000001", "Ali").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(42), createdAt))

	reg, err := repo.Create(context.Background(), &domain.Registration{
		SlotID: 5,
		Phone:  "09120000001",
		Name:   "Ali",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(42), reg.ID)
	assert.Equal(t, createdAt, reg.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_UniqueViolation(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery("INSERT INTO registrations").
		WillReturnError(&pq.Error{Code: "23505"})

	_, err := repo.Create(context.Background(), &domain.Registration{
		SlotID: 5,
		Phone:  "09120000001",
		Name:   "Ali",
	})

	assert.ErrorIs(t, err, ErrDuplicateRegistration)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExistsBySlotAndPhone(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery("SELECT 1 FROM registrations").
		WithArgs(int64(5), "09120000001").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

	exists, err := repo.ExistsBySlotAndPhone(context.Background(), 5, "09120000001")

	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExistsBySlotAndPhone_NoRows(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery("SELECT 1 FROM registrations").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}))

	exists, err := repo.ExistsBySlotAndPhone(context.Background(), 5, "09120000001")

	require.NoError(t, err)
	assert.False(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountBySlot(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM registrations`).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(13))

	count, err := repo.CountBySlot(context.Background(), 5)

	require.NoError(t, err)
	assert.Equal(t, 13, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListBySlot(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now()

	rows := sqlmock.NewRows([]string{"id", "slot_id", "phone", "name", "created_at"}).
		AddRow(int64(1), int64(5), "09120000001", "Ali", now).
		AddRow(int64(2), int64(5), "09120000002", "Reza", now)
	mock.ExpectQuery("SELECT id, slot_id, phone, name, created_at FROM registrations").
		WithArgs(int64(5)).
		WillReturnRows(rows)

	regs, err := repo.ListBySlot(context.Background(), 5)

	require.NoError(t, err)
	require.Len(t, regs, 2)
	assert.Equal(t, "Ali", regs[0].Name)
	assert.Equal(t, "09120000002", regs[1].Phone)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountByPartition(t *testing.T) {
	repo, mock := newMock(t)

	rows := sqlmock.NewRows([]string{"sport", "group_name", "count"}).
		AddRow("futsal", "A", 6).
		AddRow("volleyball", "", 3)
	mock.ExpectQuery("SELECT s.sport, s.group_name, COUNT").
		WillReturnRows(rows)

	counts, err := repo.CountByPartition(context.Background())

	require.NoError(t, err)
	require.Len(t, counts, 2)
	assert.Equal(t, domain.SportFutsal, counts[0].Sport)
	assert.Equal(t, "A", counts[0].Group)
	assert.Equal(t, 6, counts[0].Count)
	assert.Equal(t, domain.SportVolleyball, counts[1].Sport)
	assert.NoError(t, mock.ExpectationsWereMet())
}
