package get_slots

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/amirsdt/SCC-ReservationService/internal/api/handlers"
	"github.com/amirsdt/SCC-ReservationService/internal/domain"
	"github.com/amirsdt/SCC-ReservationService/internal/service/schedule"
)

const (
	msgInvalidSport = "некорректный вид спорта"
	msgInvalidGroup = "некорректная группа"
)

type Handler struct {
	scheduleService ScheduleService
	logger          Logger
}

func NewHandler(scheduleService ScheduleService, logger Logger) *Handler {
	return &Handler{
		scheduleService: scheduleService,
		logger:          logger,
	}
}

// Handle GET /api/v1/sports/{sport}/slots
// Query params: group (optional, только для футзала)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	sport := domain.Sport(strings.ToLower(vars["sport"]))
	if !sport.IsValid() {
		h.logger.Warn("GET /sports/{sport}/slots - Invalid sport: %q", vars["sport"])
		handlers.RespondBadRequest(w, msgInvalidSport)
		return
	}

	resp := &Response{Sport: string(sport), Slots: []Slot{}}

	// С параметром group отдаем один раздел, без него - все разделы
	if group := strings.ToUpper(r.URL.Query().Get("group")); group != "" {
		if !sport.IsValidGroup(group) {
			h.logger.Warn("GET /sports/{sport}/slots - Invalid group: %q", group)
			handlers.RespondBadRequest(w, msgInvalidGroup)
			return
		}
		slots, err := h.scheduleService.ListPartition(r.Context(), sport, group)
		if err != nil {
			h.respondServiceError(w, err)
			return
		}
		for i := range slots {
			resp.Slots = append(resp.Slots, toSlot(&slots[i]))
		}
		handlers.RespondJSON(w, http.StatusOK, resp)
		return
	}

	all, err := h.scheduleService.ListAll(r.Context(), sport)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	for _, gr := range all.Groups {
		for i := range gr.Slots {
			resp.Slots = append(resp.Slots, toSlot(&gr.Slots[i]))
		}
	}
	handlers.RespondJSON(w, http.StatusOK, resp)
}

func (h *Handler) respondServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, schedule.ErrInvalidInput) {
		handlers.RespondBadRequest(w, msgInvalidSport)
		return
	}
	h.logger.Error("GET /sports/{sport}/slots - Service error: %v", err)
	handlers.RespondInternalError(w)
}
