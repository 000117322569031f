package get_month_calendar

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BookingCalendar/internal/api/handlers"
	getMonthCalendar "github.com/m04kA/SMC-BookingCalendar/internal/usecase/get_month_calendar"
)

const (
	msgInvalidProfessionalID = "некорректный ID мастера"
	msgMissingMonth          = "месяц обязателен"
	msgInvalidMonth          = "некорректный формат месяца, ожидается YYYY-MM"
)

type Handler struct {
	useCase GetMonthCalendarUseCase
	logger  Logger
}

func NewHandler(useCase GetMonthCalendarUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/professionals/{professionalId}/calendar
// Query params: month (required, YYYY-MM), locale (optional, например ru_RU)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	professionalID, err := strconv.ParseInt(mux.Vars(r)["professionalId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /professionals/{id}/calendar - Invalid professional ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProfessionalID)
		return
	}

	query := r.URL.Query()
	monthStr := query.Get("month")
	if monthStr == "" {
		h.logger.Warn("GET /professionals/{id}/calendar - Missing month")
		handlers.RespondBadRequest(w, msgMissingMonth)
		return
	}

	useCaseReq, err := ToUseCaseRequest(professionalID, monthStr, query.Get("locale"))
	if err != nil {
		h.logger.Warn("GET /professionals/{id}/calendar - Invalid month format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMonth)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getMonthCalendar.ErrInvalidInput):
			h.logger.Warn("GET /professionals/{id}/calendar - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /professionals/{id}/calendar - Failed to build calendar: professional_id=%d, month=%s, error=%v",
				professionalID, useCaseReq.Month, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /professionals/{id}/calendar - Calendar built successfully: professional_id=%d, month=%s",
		professionalID, useCaseReq.Month)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
