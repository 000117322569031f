package invalidate_day_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BookingCalendar/internal/api/handlers"
	invalidateDaySlots "github.com/m04kA/SMC-BookingCalendar/internal/usecase/invalidate_day_slots"
	"github.com/m04kA/SMC-BookingCalendar/pkg/types"
)

const (
	msgInvalidProfessionalID = "некорректный ID мастера"
	msgMissingDate           = "дата обязательна"
	msgInvalidDate           = "некорректный формат даты, ожидается YYYY-MM-DD"
)

type Handler struct {
	useCase InvalidateDaySlotsUseCase
	logger  Logger
}

func NewHandler(useCase InvalidateDaySlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/professionals/{professionalId}/slots
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	professionalID, err := strconv.ParseInt(mux.Vars(r)["professionalId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /professionals/{id}/slots - Invalid professional ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProfessionalID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("DELETE /professionals/{id}/slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := types.ParseDateKey(dateStr)
	if err != nil {
		h.logger.Warn("DELETE /professionals/{id}/slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	err = h.useCase.Execute(r.Context(), &invalidateDaySlots.Request{ProfessionalID: professionalID, Date: date})
	if err != nil {
		switch {
		case errors.Is(err, invalidateDaySlots.ErrInvalidInput):
			h.logger.Warn("DELETE /professionals/{id}/slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("DELETE /professionals/{id}/slots - Failed to invalidate slots: professional_id=%d, date=%s, error=%v",
				professionalID, date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /professionals/{id}/slots - Slots invalidated: professional_id=%d, date=%s", professionalID, date)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
