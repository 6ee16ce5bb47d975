package get_slots

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirsdt/SCC-ReservationService/internal/domain"
	scheduleModels "github.com/amirsdt/SCC-ReservationService/internal/service/schedule/models"
	"github.com/amirsdt/SCC-ReservationService/pkg/types"
)

type fakeScheduleService struct {
	all       *scheduleModels.ScheduleResponse
	partition []scheduleModels.SlotResponse
	err       error
}

func (f *fakeScheduleService) ListAll(_ context.Context, _ domain.Sport) (*scheduleModels.ScheduleResponse, error) {
	return f.all, f.err
}

func (f *fakeScheduleService) ListPartition(_ context.Context, _ domain.Sport, _ string) ([]scheduleModels.SlotResponse, error) {
	return f.partition, f.err
}

type nopLogger struct{}

func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newRouter(svc *fakeScheduleService) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/sports/{sport}/slots", NewHandler(svc, nopLogger{}).Handle).Methods(http.MethodGet)
	return r
}

func slotResponse(id int64, group string) scheduleModels.SlotResponse {
	return scheduleModels.SlotResponse{
		ID:         id,
		Position:   1,
		Sport:      domain.SportFutsal,
		Group:      group,
		Date:       time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC),
		DateJalali: "1404/12/01",
		StartTime:  types.TimeString("18:00"),
		EndTime:    types.TimeString("19:30"),
		Capacity:   14,
	}
}

func TestHandle_AllGroups(t *testing.T) {
	svc := &fakeScheduleService{
		all: &scheduleModels.ScheduleResponse{
			Sport: domain.SportFutsal,
			Groups: []scheduleModels.GroupSchedule{
				{Group: "A", Slots: []scheduleModels.SlotResponse{slotResponse(1, "A")}},
				{Group: "B", Slots: []scheduleModels.SlotResponse{slotResponse(2, "B")}},
			},
		},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/sports/futsal/slots", nil)
	newRouter(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "futsal", resp.Sport)
	require.Len(t, resp.Slots, 2)
	assert.Equal(t, "A", resp.Slots[0].Group)
	assert.Equal(t, "2026-02-20", resp.Slots[0].Date)
	assert.Equal(t, "18:00", resp.Slots[0].StartTime)
}

func TestHandle_SingleGroup(t *testing.T) {
	svc := &fakeScheduleService{
		partition: []scheduleModels.SlotResponse{slotResponse(1, "C")},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/sports/futsal/slots?group=c", nil)
	newRouter(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, "C", resp.Slots[0].Group)
}

func TestHandle_EmptySchedule(t *testing.T) {
	svc := &fakeScheduleService{
		all: &scheduleModels.ScheduleResponse{Sport: domain.SportVolleyball},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/sports/volleyball/slots", nil)
	newRouter(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	// Пустой список сериализуется как [], а не null
	assert.JSONEq(t, `{"sport":"volleyball","slots":[]}`, rec.Body.String())
}

func TestHandle_InvalidSport(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/sports/tennis/slots", nil)
	newRouter(&fakeScheduleService{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_InvalidGroup(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/sports/futsal/slots?group=Z", nil)
	newRouter(&fakeScheduleService{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_GroupForUngroupedSport(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/sports/basketball/slots?group=A", nil)
	newRouter(&fakeScheduleService{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
