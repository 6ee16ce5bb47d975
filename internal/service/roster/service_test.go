package roster

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirsdt/SCC-ReservationService/internal/domain"
	rosterRepo "github.com/amirsdt/SCC-ReservationService/internal/infra/storage/roster"
	"github.com/amirsdt/SCC-ReservationService/internal/service/roster/models"
)

type fakeRosterRepo struct {
	players map[string]*domain.Player
}

func newFakeRosterRepo() *fakeRosterRepo {
	return &fakeRosterRepo{players: map[string]*domain.Player{}}
}

func key(sport domain.Sport, phone string) string {
	return string(sport) + "/" + phone
}

func (f *fakeRosterRepo) Create(_ context.Context, player *domain.Player) (*domain.Player, error) {
	k := key(player.Sport, player.Phone)
	if _, ok := f.players[k]; ok {
		return nil, rosterRepo.ErrPlayerExists
	}
	cp := *player
	f.players[k] = &cp
	return player, nil
}

func (f *fakeRosterRepo) GetBySportAndPhone(_ context.Context, sport domain.Sport, phone string) (*domain.Player, error) {
	player, ok := f.players[key(sport, phone)]
	if !ok {
		return nil, rosterRepo.ErrPlayerNotFound
	}
	cp := *player
	return &cp, nil
}

func (f *fakeRosterRepo) Delete(_ context.Context, sport domain.Sport, group, phone string) error {
	k := key(sport, phone)
	player, ok := f.players[k]
	if !ok {
		return rosterRepo.ErrPlayerNotFound
	}
	if sport.Grouped() && player.Group != group {
		return rosterRepo.ErrPlayerNotFound
	}
	delete(f.players, k)
	return nil
}

func (f *fakeRosterRepo) ListBySport(_ context.Context, sport domain.Sport) ([]*domain.Player, error) {
	// Канонический порядок выдачи репозитория: группа, затем имя.
	// Для простоты фейк собирает по группам в алфавитном порядке ключей
	out := make([]*domain.Player, 0)
	for _, g := range append([]string{""}, domain.FutsalGroups...) {
		for _, p := range f.players {
			if p.Sport == sport && p.Group == g {
				cp := *p
				out = append(out, &cp)
			}
		}
	}
	return out, nil
}

type passthroughTxManager struct{}

func (passthroughTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (passthroughTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newService() (*Service, *fakeRosterRepo) {
	repo := newFakeRosterRepo()
	return NewService(repo, passthroughTxManager{}, nopLogger{}), repo
}

func TestAddPlayer(t *testing.T) {
	svc, repo := newService()

	resp, err := svc.AddPlayer(context.Background(), &models.AddPlayerRequest{
		Sport: domain.SportFutsal,
		Group: "A",
		Phone: "+98 912 000 0001",
		Name:  "Ali",
	})

	require.NoError(t, err)
	assert.Equal(t, "09120000001", resp.Phone)
	assert.Contains(t, repo.players, key(domain.SportFutsal, "09120000001"))
}

func TestAddPlayer_DuplicateSameGroup(t *testing.T) {
	svc, _ := newService()

	req := &models.AddPlayerRequest{
		Sport: domain.SportFutsal,
		Group: "A",
		Phone: "09120000001",
		Name:  "Ali",
	}
	_, err := svc.AddPlayer(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.AddPlayer(context.Background(), req)
	assert.ErrorIs(t, err, ErrPlayerExists)
}

func TestAddPlayer_OtherGroupNamed(t *testing.T) {
	svc, _ := newService()

	_, err := svc.AddPlayer(context.Background(), &models.AddPlayerRequest{
		Sport: domain.SportFutsal,
		Group: "A",
		Phone: "09120000001",
		Name:  "Ali",
	})
	require.NoError(t, err)

	_, err = svc.AddPlayer(context.Background(), &models.AddPlayerRequest{
		Sport: domain.SportFutsal,
		Group: "B",
		Phone: "09120000001",
		Name:  "Ali",
	})

	var groupErr *PlayerInOtherGroupError
	require.ErrorAs(t, err, &groupErr)
	assert.Equal(t, "A", groupErr.Group)
}

// Повторное добавление в реестр без групп отклоняется явно
func TestAddPlayer_UngroupedDuplicateRejected(t *testing.T) {
	svc, _ := newService()

	req := &models.AddPlayerRequest{
		Sport: domain.SportVolleyball,
		Phone: "09120000001",
		Name:  "Ali",
	}
	_, err := svc.AddPlayer(context.Background(), req)
	require.NoError(t, err)

	req.Name = "Someone Else"
	_, err = svc.AddPlayer(context.Background(), req)
	assert.ErrorIs(t, err, ErrPlayerExists)
}

func TestAddPlayer_Validation(t *testing.T) {
	svc, _ := newService()

	tests := []struct {
		name    string
		req     *models.AddPlayerRequest
		wantErr error
	}{
		{
			name:    "unknown sport",
			req:     &models.AddPlayerRequest{Sport: "tennis", Phone: "09120000001", Name: "Ali"},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "futsal without group",
			req:     &models.AddPlayerRequest{Sport: domain.SportFutsal, Phone: "09120000001", Name: "Ali"},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "group for basketball",
			req:     &models.AddPlayerRequest{Sport: domain.SportBasketball, Group: "A", Phone: "09120000001", Name: "Ali"},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "empty name",
			req:     &models.AddPlayerRequest{Sport: domain.SportFutsal, Group: "A", Phone: "09120000001"},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "bad phone",
			req:     &models.AddPlayerRequest{Sport: domain.SportFutsal, Group: "A", Phone: "12345", Name: "Ali"},
			wantErr: ErrInvalidPhone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AddPlayer(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRemovePlayer(t *testing.T) {
	svc, repo := newService()

	_, err := svc.AddPlayer(context.Background(), &models.AddPlayerRequest{
		Sport: domain.SportFutsal,
		Group: "A",
		Phone: "09120000001",
		Name:  "Ali",
	})
	require.NoError(t, err)

	resp, err := svc.RemovePlayer(context.Background(), &models.RemovePlayerRequest{
		Sport: domain.SportFutsal,
		Group: "A",
		Phone: "9120000001", // другой формат того же номера
	})

	require.NoError(t, err)
	assert.Equal(t, "Ali", resp.Name)
	assert.Empty(t, repo.players)
}

func TestRemovePlayer_WrongGroup(t *testing.T) {
	svc, _ := newService()

	_, err := svc.AddPlayer(context.Background(), &models.AddPlayerRequest{
		Sport: domain.SportFutsal,
		Group: "A",
		Phone: "09120000001",
		Name:  "Ali",
	})
	require.NoError(t, err)

	_, err = svc.RemovePlayer(context.Background(), &models.RemovePlayerRequest{
		Sport: domain.SportFutsal,
		Group: "B",
		Phone: "09120000001",
	})

	assert.ErrorIs(t, err, ErrPlayerNotFound)
}

func TestRemovePlayer_NotFound(t *testing.T) {
	svc, _ := newService()

	_, err := svc.RemovePlayer(context.Background(), &models.RemovePlayerRequest{
		Sport: domain.SportBasketball,
		Phone: "09120000001",
	})

	assert.ErrorIs(t, err, ErrPlayerNotFound)
}

func TestFindOwner(t *testing.T) {
	svc, _ := newService()

	_, err := svc.AddPlayer(context.Background(), &models.AddPlayerRequest{
		Sport: domain.SportFutsal,
		Group: "C",
		Phone: "09120000001",
		Name:  "Ali",
	})
	require.NoError(t, err)

	resp, err := svc.FindOwner(context.Background(), domain.SportFutsal, "+989120000001")
	require.NoError(t, err)
	assert.Equal(t, "C", resp.Group)

	_, err = svc.FindOwner(context.Background(), domain.SportFutsal, "09129999999")
	assert.ErrorIs(t, err, ErrPlayerNotFound)
}

func TestListPlayers_TruncatesToDisplayLimit(t *testing.T) {
	svc, _ := newService()

	for i := 0; i < 15; i++ {
		_, err := svc.AddPlayer(context.Background(), &models.AddPlayerRequest{
			Sport: domain.SportFutsal,
			Group: "A",
			Phone: fmt.Sprintf("091200000%02d", i),
			Name:  fmt.Sprintf("Player %02d", i),
		})
		require.NoError(t, err)
	}

	resp, err := svc.ListPlayers(context.Background(), domain.SportFutsal)
	require.NoError(t, err)
	require.Len(t, resp.Groups, 1)
	assert.Equal(t, 15, resp.Groups[0].Total)
	assert.Len(t, resp.Groups[0].Players, displayLimit)
}

func TestListPlayers_GroupOrder(t *testing.T) {
	svc, _ := newService()

	groups := []string{"C", "A", "B"}
	for i, g := range groups {
		_, err := svc.AddPlayer(context.Background(), &models.AddPlayerRequest{
			Sport: domain.SportFutsal,
			Group: g,
			Phone: fmt.Sprintf("0912000000%d", i+1),
			Name:  "Player " + g,
		})
		require.NoError(t, err)
	}

	resp, err := svc.ListPlayers(context.Background(), domain.SportFutsal)
	require.NoError(t, err)
	require.Len(t, resp.Groups, 3)
	assert.Equal(t, "A", resp.Groups[0].Group)
	assert.Equal(t, "B", resp.Groups[1].Group)
	assert.Equal(t, "C", resp.Groups[2].Group)
}
