package get_registrations

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/amirsdt/SCC-ReservationService/internal/api/handlers"
	"github.com/amirsdt/SCC-ReservationService/internal/service/reports"
)

const (
	msgInvalidSlotID = "некорректный ID слота"
	msgSlotNotFound  = "слот не найден"
)

type Handler struct {
	reportsService ReportsService
	logger         Logger
}

func NewHandler(reportsService ReportsService, logger Logger) *Handler {
	return &Handler{
		reportsService: reportsService,
		logger:         logger,
	}
}

// Handle GET /api/v1/slots/{slotId}/registrations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	slotID, err := strconv.ParseInt(vars["slotId"], 10, 64)
	if err != nil || slotID <= 0 {
		h.logger.Warn("GET /slots/{slotId}/registrations - Invalid slot ID: %q", vars["slotId"])
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	result, err := h.reportsService.ListSlotRegistrations(r.Context(), slotID)
	if err != nil {
		if errors.Is(err, reports.ErrSlotNotFound) {
			handlers.RespondNotFound(w, msgSlotNotFound)
			return
		}
		h.logger.Error("GET /slots/{slotId}/registrations - Service error: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, fromServiceModel(result))
}
