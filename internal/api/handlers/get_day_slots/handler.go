package get_day_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BookingCalendar/internal/api/handlers"
	getDaySlots "github.com/m04kA/SMC-BookingCalendar/internal/usecase/get_day_slots"
)

const (
	msgInvalidProfessionalID = "некорректный ID мастера"
	msgMissingDate           = "дата обязательна"
	msgInvalidDate           = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgDateNotSelectable     = "дата недоступна для записи"
)

type Handler struct {
	useCase GetDaySlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetDaySlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/professionals/{professionalId}/slots
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	professionalID, err := strconv.ParseInt(mux.Vars(r)["professionalId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /professionals/{id}/slots - Invalid professional ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProfessionalID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /professionals/{id}/slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(professionalID, dateStr)
	if err != nil {
		h.logger.Warn("GET /professionals/{id}/slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getDaySlots.ErrInvalidInput):
			h.logger.Warn("GET /professionals/{id}/slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, getDaySlots.ErrDateNotSelectable):
			h.logger.Warn("GET /professionals/{id}/slots - Date not selectable: professional_id=%d, date=%s, error=%v",
				useCaseReq.ProfessionalID, useCaseReq.Date, err)
			handlers.RespondUnprocessableEntity(w, msgDateNotSelectable+": "+err.Error())

		default:
			h.logger.Error("GET /professionals/{id}/slots - Failed to get slots: professional_id=%d, date=%s, error=%v",
				useCaseReq.ProfessionalID, useCaseReq.Date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /professionals/{id}/slots - Slots retrieved successfully: professional_id=%d, date=%s, slots_count=%d",
		useCaseReq.ProfessionalID, useCaseReq.Date, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
