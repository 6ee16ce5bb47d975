package schedule

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirsdt/SCC-ReservationService/internal/domain"
	slotRepo "github.com/amirsdt/SCC-ReservationService/internal/infra/storage/slot"
	"github.com/amirsdt/SCC-ReservationService/internal/service/schedule/models"
	"github.com/amirsdt/SCC-ReservationService/pkg/types"
)

// fakeSlotRepo хранит слоты и их корзины регистраций. Удаление слота
// уносит корзину каскадом, как внешний ключ в схеме БД
type fakeSlotRepo struct {
	slots  map[int64]*domain.Slot
	regs   map[int64][]string
	nextID int64
}

func newFakeSlotRepo() *fakeSlotRepo {
	return &fakeSlotRepo{
		slots: map[int64]*domain.Slot{},
		regs:  map[int64][]string{},
	}
}

func (f *fakeSlotRepo) Create(_ context.Context, slot *domain.Slot) (*domain.Slot, error) {
	f.nextID++
	cp := *slot
	cp.ID = f.nextID
	f.slots[cp.ID] = &cp
	out := cp
	return &out, nil
}

// Порядок выдачи как в репозитории: дата, затем идентификатор
func (f *fakeSlotRepo) ListByPartition(_ context.Context, sport domain.Sport, group string) ([]*domain.Slot, error) {
	out := make([]*domain.Slot, 0)
	for _, s := range f.slots {
		if s.Sport == sport && s.Group == group {
			cp := *s
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (f *fakeSlotRepo) ListActive(ctx context.Context, sport domain.Sport, group string, today time.Time) ([]*domain.Slot, error) {
	all, _ := f.ListByPartition(ctx, sport, group)
	out := make([]*domain.Slot, 0, len(all))
	for _, s := range all {
		if !s.Date.Before(today) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSlotRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.slots[id]; !ok {
		return slotRepo.ErrSlotNotFound
	}
	delete(f.slots, id)
	delete(f.regs, id)
	return nil
}

func (f *fakeSlotRepo) DeleteExpired(_ context.Context, sport domain.Sport, group string, today time.Time) (int64, error) {
	var n int64
	for id, s := range f.slots {
		if s.Sport == sport && s.Group == group && s.Date.Before(today) {
			delete(f.slots, id)
			delete(f.regs, id)
			n++
		}
	}
	return n, nil
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

// fixedClock отдает зафиксированный момент, тесты не зависят от системных часов
type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

var testNow = time.Date(2026, 2, 11, 15, 30, 0, 0, time.UTC)

func newService() (*Service, *fakeSlotRepo) {
	repo := newFakeSlotRepo()
	return NewService(repo, passthroughTxManager{}, fixedClock{now: testNow}, nopLogger{}), repo
}

func addSlot(repo *fakeSlotRepo, sport domain.Sport, group, date string) *domain.Slot {
	d, _ := time.Parse("2006-01-02", date)
	slot, _ := repo.Create(context.Background(), &domain.Slot{
		Sport:     sport,
		Group:     group,
		Date:      d,
		StartTime: types.TimeString("18:00"),
		EndTime:   types.TimeString("19:30"),
		Capacity:  10,
	})
	return slot
}

func TestAddSlot(t *testing.T) {
	svc, repo := newService()

	resp, err := svc.AddSlot(context.Background(), &models.AddSlotRequest{
		Sport:     domain.SportFutsal,
		Group:     "A",
		Date:      "2026-02-20",
		StartTime: "18:00",
		EndTime:   "19:30",
		Capacity:  14,
	})

	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC), resp.Date)
	assert.NotEmpty(t, resp.DateJalali)
	assert.Len(t, repo.slots, 1)
}

func TestAddSlot_JalaliDate(t *testing.T) {
	svc, _ := newService()

	resp, err := svc.AddSlot(context.Background(), &models.AddSlotRequest{
		Sport:     domain.SportBasketball,
		Date:      "1404/12/25",
		StartTime: "20:00",
		EndTime:   "21:30",
		Capacity:  12,
	})

	require.NoError(t, err)
	assert.Equal(t, "1404/12/25", resp.DateJalali)
}

func TestAddSlot_TodayAllowed(t *testing.T) {
	svc, _ := newService()

	_, err := svc.AddSlot(context.Background(), &models.AddSlotRequest{
		Sport:     domain.SportVolleyball,
		Date:      "2026-02-11",
		StartTime: "18:00",
		EndTime:   "19:00",
		Capacity:  10,
	})

	assert.NoError(t, err)
}

func TestAddSlot_Rejections(t *testing.T) {
	svc, _ := newService()

	tests := []struct {
		name    string
		req     *models.AddSlotRequest
		wantErr error
	}{
		{
			name:    "unknown sport",
			req:     &models.AddSlotRequest{Sport: "tennis", Date: "2026-02-20", StartTime: "18:00", EndTime: "19:00", Capacity: 10},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "bad date",
			req:     &models.AddSlotRequest{Sport: domain.SportFutsal, Group: "A", Date: "tomorrow", StartTime: "18:00", EndTime: "19:00", Capacity: 10},
			wantErr: ErrInvalidDate,
		},
		{
			name:    "past date",
			req:     &models.AddSlotRequest{Sport: domain.SportFutsal, Group: "A", Date: "2026-02-10", StartTime: "18:00", EndTime: "19:00", Capacity: 10},
			wantErr: ErrPastDate,
		},
		{
			name:    "bad start time",
			req:     &models.AddSlotRequest{Sport: domain.SportFutsal, Group: "A", Date: "2026-02-20", StartTime: "25:00", EndTime: "19:00", Capacity: 10},
			wantErr: ErrInvalidTimeRange,
		},
		{
			name:    "start not before end",
			req:     &models.AddSlotRequest{Sport: domain.SportFutsal, Group: "A", Date: "2026-02-20", StartTime: "19:00", EndTime: "19:00", Capacity: 10},
			wantErr: ErrInvalidTimeRange,
		},
		{
			name:    "negative capacity",
			req:     &models.AddSlotRequest{Sport: domain.SportFutsal, Group: "A", Date: "2026-02-20", StartTime: "18:00", EndTime: "19:00", Capacity: -1},
			wantErr: ErrInvalidCapacity,
		},
		{
			name:    "capacity too large",
			req:     &models.AddSlotRequest{Sport: domain.SportFutsal, Group: "A", Date: "2026-02-20", StartTime: "18:00", EndTime: "19:00", Capacity: domain.MaxCapacity + 1},
			wantErr: ErrInvalidCapacity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AddSlot(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestListActive_SkipsExpired(t *testing.T) {
	svc, repo := newService()
	addSlot(repo, domain.SportFutsal, "A", "2026-02-10") // вчера
	kept := addSlot(repo, domain.SportFutsal, "A", "2026-02-15")

	slots, err := svc.ListActive(context.Background(), domain.SportFutsal, "A")

	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, kept.ID, slots[0].ID)
	assert.Equal(t, 1, slots[0].Position)
}

func TestListPartition_PositionsFollowDateOrder(t *testing.T) {
	svc, repo := newService()
	late := addSlot(repo, domain.SportFutsal, "B", "2026-03-01")
	early := addSlot(repo, domain.SportFutsal, "B", "2026-02-12")

	slots, err := svc.ListPartition(context.Background(), domain.SportFutsal, "B")

	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, early.ID, slots[0].ID)
	assert.Equal(t, 1, slots[0].Position)
	assert.Equal(t, late.ID, slots[1].ID)
	assert.Equal(t, 2, slots[1].Position)
}

func TestListAll_SkipsEmptyGroups(t *testing.T) {
	svc, repo := newService()
	addSlot(repo, domain.SportFutsal, "C", "2026-02-15")
	addSlot(repo, domain.SportFutsal, "A", "2026-02-15")

	resp, err := svc.ListAll(context.Background(), domain.SportFutsal)

	require.NoError(t, err)
	require.Len(t, resp.Groups, 2)
	assert.Equal(t, "A", resp.Groups[0].Group)
	assert.Equal(t, "C", resp.Groups[1].Group)
}

func TestRemoveSlotAt(t *testing.T) {
	svc, repo := newService()
	first := addSlot(repo, domain.SportFutsal, "A", "2026-02-12")
	addSlot(repo, domain.SportFutsal, "A", "2026-02-15")

	removed, err := svc.RemoveSlotAt(context.Background(), domain.SportFutsal, "A", 1)

	require.NoError(t, err)
	assert.Equal(t, first.ID, removed.ID)
	assert.NotContains(t, repo.slots, first.ID)
	assert.Len(t, repo.slots, 1)
}

// Удаление слота по позиции уносит только его корзину регистраций.
// Записи на соседний слот остаются привязанными к его идентификатору,
// хотя его позиция в списке сдвигается
func TestRemoveSlotAt_KeepsOtherRegistrations(t *testing.T) {
	svc, repo := newService()
	first := addSlot(repo, domain.SportFutsal, "A", "2026-02-12")
	second := addSlot(repo, domain.SportFutsal, "A", "2026-02-15")
	repo.regs[first.ID] = []string{"Reza"}
	repo.regs[second.ID] = []string{"Ali", "Sara"}

	_, err := svc.RemoveSlotAt(context.Background(), domain.SportFutsal, "A", 1)
	require.NoError(t, err)

	assert.NotContains(t, repo.regs, first.ID)
	assert.Equal(t, []string{"Ali", "Sara"}, repo.regs[second.ID])

	// Оставшийся слот поднялся на первую позицию, но сохранил идентификатор
	slots, err := svc.ListPartition(context.Background(), domain.SportFutsal, "A")
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, second.ID, slots[0].ID)
	assert.Equal(t, 1, slots[0].Position)
}

func TestRemoveSlotAt_OutOfRange(t *testing.T) {
	svc, repo := newService()
	addSlot(repo, domain.SportVolleyball, "", "2026-02-15")

	tests := []int{0, -1, 2}
	for _, position := range tests {
		_, err := svc.RemoveSlotAt(context.Background(), domain.SportVolleyball, "", position)
		assert.ErrorIs(t, err, ErrSlotIndexOutOfRange, "position=%d", position)
	}
	assert.Len(t, repo.slots, 1)
}

func TestSweepExpired(t *testing.T) {
	svc, repo := newService()
	addSlot(repo, domain.SportFutsal, "A", "2026-02-01")
	addSlot(repo, domain.SportFutsal, "B", "2026-02-10")
	addSlot(repo, domain.SportBasketball, "", "2026-01-20")
	kept := addSlot(repo, domain.SportVolleyball, "", "2026-02-11") // сегодня еще активен

	n, err := svc.SweepExpired(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	require.Len(t, repo.slots, 1)
	assert.Contains(t, repo.slots, kept.ID)
}

// Чистка уносит корзины только просроченных слотов. Регистрации на
// будущий слот переживают её и остаются под своим идентификатором
func TestSweepExpired_KeepsFutureRegistrations(t *testing.T) {
	svc, repo := newService()
	expired := addSlot(repo, domain.SportFutsal, "A", "2026-02-01")
	future := addSlot(repo, domain.SportFutsal, "A", "2026-02-20")
	repo.regs[expired.ID] = []string{"Reza"}
	repo.regs[future.ID] = []string{"Ali"}

	n, err := svc.SweepExpired(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.NotContains(t, repo.regs, expired.ID)
	assert.Equal(t, []string{"Ali"}, repo.regs[future.ID])
	assert.Contains(t, repo.slots, future.ID)
}

func TestSweepExpired_NothingToRemove(t *testing.T) {
	svc, repo := newService()
	addSlot(repo, domain.SportFutsal, "A", "2026-02-20")

	n, err := svc.SweepExpired(context.Background())

	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Len(t, repo.slots, 1)
}
