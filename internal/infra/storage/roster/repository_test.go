package roster

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
	createdAt := time.Date(2026, 2, 11, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery("INSERT INTO players").
		WithArgs(domain.SportFutsal, "09123456789", "A", "Ali").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(createdAt))

	player, err := repo.Create(context.Background(), &domain.Player{
		Sport: domain.SportFutsal,
		Group: "A",
		Phone: "09123456789",
		Name:  "Ali",
	})

	require.NoError(t, err)
	assert.Equal(t, createdAt, player.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_UniqueViolation(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery("INSERT INTO players").
		WillReturnError(&pq.Error{Code: "23505"})

	_, err := repo.Create(context.Background(), &domain.Player{
		Sport: domain.SportBasketball,
		Phone: "09123456789",
		Name:  "Ali",
	})

	assert.ErrorIs(t, err, ErrPlayerExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetBySportAndPhone(t *testing.T) {
	repo, mock := newMock(t)

	rows := sqlmock.NewRows([]string{"sport", "phone", "group_name", "name", "created_at"}).
		AddRow("futsal", "09123456789", "B", "Reza", time.Now())
	mock.ExpectQuery("SELECT sport, phone, group_name, name, created_at FROM players").
		WithArgs(domain.SportFutsal, "09123456789").
		WillReturnRows(rows)

	player, err := repo.GetBySportAndPhone(context.Background(), domain.SportFutsal, "09123456789")

	require.NoError(t, err)
	assert.Equal(t, "B", player.Group)
	assert.Equal(t, "Reza", player.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetBySportAndPhone_NotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery("SELECT sport, phone, group_name, name, created_at FROM players").
		WillReturnRows(sqlmock.NewRows([]string{"sport", "phone", "group_name", "name", "created_at"}))

	_, err := repo.GetBySportAndPhone(context.Background(), domain.SportVolleyball, "09123456789")

	assert.ErrorIs(t, err, ErrPlayerNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_GroupedSportChecksGroup(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec("DELETE FROM players").
		WithArgs(domain.SportFutsal, "09123456789", "A").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Delete(context.Background(), domain.SportFutsal, "A", "09123456789")

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_NotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec("DELETE FROM players").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), domain.SportBasketball, "", "09123456789")

	assert.ErrorIs(t, err, ErrPlayerNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListBySport(t *testing.T) {
	repo, mock := newMock(t)

	rows := sqlmock.NewRows([]string{"sport", "phone", "group_name", "name", "created_at"}).
		AddRow("futsal", "09120000001", "A", "Ali", time.Now()).
		AddRow("futsal", "09120000002", "B", "Reza", time.Now())
	mock.ExpectQuery("SELECT sport, phone, group_name, name, created_at FROM players").
		WithArgs(domain.SportFutsal).
		WillReturnRows(rows)

	players, err := repo.ListBySport(context.Background(), domain.SportFutsal)

	require.NoError(t, err)
	require.Len(t, players, 2)
	assert.Equal(t, "Ali", players[0].Name)
	assert.Equal(t, "B", players[1].Group)
	assert.NoError(t, mock.ExpectationsWereMet())
}
